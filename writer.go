// Copyright (c) 2025 Neomantra Corp

package market

import (
	"encoding/binary"
	"io"
)

// StreamWriter frames encoded messages onto an io.Writer with the 4-byte
// big-endian length prefix the Scanner expects.
type StreamWriter struct {
	writer io.Writer
	codec  *Codec
}

// NewStreamWriter creates a StreamWriter encoding through codec.
// A nil codec uses the system clock.
func NewStreamWriter(writer io.Writer, codec *Codec) *StreamWriter {
	if codec == nil {
		codec = NewCodec(nil)
	}
	return &StreamWriter{writer: writer, codec: codec}
}

// WriteFrame writes one already-encoded message.
func (w *StreamWriter) WriteFrame(payload []byte) error {
	var prefix [frameHeaderSize]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(len(payload)))
	if _, err := w.writer.Write(prefix[:]); err != nil {
		return err
	}
	_, err := w.writer.Write(payload)
	return err
}

// WriteOrderBook encodes and frames an order-book message.
func (w *StreamWriter) WriteOrderBook(msg *OrderBookMsg) error {
	payload, err := w.codec.EncodeOrderBook(msg)
	if err != nil {
		return err
	}
	return w.WriteFrame(payload)
}

// WriteTrade encodes and frames a trade message.
func (w *StreamWriter) WriteTrade(msg *TradeMsg) error {
	payload, err := w.codec.EncodeTrade(msg)
	if err != nil {
		return err
	}
	return w.WriteFrame(payload)
}

// WriteBbo encodes and frames a BBO message.
func (w *StreamWriter) WriteBbo(msg *BboMsg) error {
	payload, err := w.codec.EncodeBbo(msg)
	if err != nil {
		return err
	}
	return w.WriteFrame(payload)
}

// WriteKline encodes and frames a kline message.
func (w *StreamWriter) WriteKline(msg *KlineMsg) error {
	payload, err := w.codec.EncodeKline(msg)
	if err != nil {
		return err
	}
	return w.WriteFrame(payload)
}
