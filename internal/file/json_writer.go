// Copyright (c) 2025 Neomantra Corp

package file

import (
	"fmt"
	"io"

	market "github.com/allonshore/crypto-market"
	"github.com/segmentio/encoding/json"
)

func WriteStreamFileAsJson(sourceFile string, forceZstdInput bool, writer io.Writer) error {
	streamFile, streamCloser, err := market.MakeCompressedReader(sourceFile, forceZstdInput)
	if err != nil {
		return fmt.Errorf("open %s: %w", sourceFile, err)
	}
	defer streamCloser.Close()

	scanner := market.NewScanner(streamFile)
	visitor := NewJsonWriterVisitor(writer)
	for scanner.Next() {
		if err := scanner.Visit(visitor); err != nil {
			return fmt.Errorf("json print failed: %w", err)
		}
	}
	if err := scanner.Error(); err != nil && err != io.EOF {
		return fmt.Errorf("scanner error: %w", err)
	}
	return visitor.OnStreamEnd()
}

////////////////////////////////////////////////////////////////////////////////

// WriteAsJson writes a value marshalled as JSON to the writer, returning any error.
func WriteAsJson[T any](val *T, writer io.Writer) error {
	jstr, err := json.Marshal(val)
	if err != nil {
		return err
	}
	_, err = writer.Write(jstr)
	if err != nil {
		return err
	}
	_, err = writer.Write([]byte{'\n'})
	return err
}

////////////////////////////////////////////////////////////////////////////////

// JsonWriterVisitor is an implementation of all the market.Visitor interface.
// It marshals all the messages as JSON and outputs it to its Writer.
type JsonWriterVisitor struct {
	writer io.Writer
}

// NewJsonWriterVisitor creates a new JsonWriterVisitor with the given writer.
func NewJsonWriterVisitor(writer io.Writer) *JsonWriterVisitor {
	return &JsonWriterVisitor{writer: writer}
}

func (v *JsonWriterVisitor) OnOrderBook(msg *market.OrderBookMsg) error {
	return WriteAsJson(msg, v.writer)
}

func (v *JsonWriterVisitor) OnTrade(msg *market.TradeMsg) error {
	return WriteAsJson(msg, v.writer)
}

func (v *JsonWriterVisitor) OnBbo(msg *market.BboMsg) error {
	return WriteAsJson(msg, v.writer)
}

func (v *JsonWriterVisitor) OnKline(msg *market.KlineMsg) error {
	return WriteAsJson(msg, v.writer)
}

func (v *JsonWriterVisitor) OnStreamEnd() error {
	return nil
}
