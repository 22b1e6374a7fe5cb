// Copyright (c) 2025 Neomantra Corp

package market

import (
	"encoding/binary"
	"fmt"
	"time"
)

///////////////////////////////////////////////////////////////////////////////

// Clock supplies the wall-clock time used to stamp the received-timestamp
// header field. Inject a fixed clock in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

///////////////////////////////////////////////////////////////////////////////

// Header is the 20-byte block every message begins with.
//
//	offset 0:  exchange timestamp, ms (6 bytes, big-endian)
//	offset 6:  received timestamp, ms (6 bytes, big-endian)
//	offset 12: exchange code (1 byte)
//	offset 13: market-type code (1 byte)
//	offset 14: message-type code (1 byte)
//	offset 15: symbol-pair code (2 bytes, big-endian)
//	offset 17: reserved (3 bytes)
//
// The received timestamp is stamped from the encoder's Clock so latency
// tools can read it off the wire; the decoder consumes and discards it.
type Header struct {
	Exchange   string      `json:"exchange"`
	MarketType MarketType  `json:"market_type"`
	MsgType    MessageType `json:"msg_type"`
	Pair       string      `json:"pair"`
	Timestamp  int64       `json:"timestamp"` // exchange-assigned, milliseconds
}

const Header_Size = 20

// Timestamps are carried in 6 bytes.
const maxTimestampMillis = 1<<48 - 1

func putUint48(b []byte, v uint64) {
	b[0] = byte(v >> 40)
	b[1] = byte(v >> 32)
	b[2] = byte(v >> 24)
	b[3] = byte(v >> 16)
	b[4] = byte(v >> 8)
	b[5] = byte(v)
}

func uint48(b []byte) uint64 {
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

// appendHeader appends the encoded header, stamping receivedMillis as the
// received timestamp.
func (h *Header) appendHeader(dst []byte, receivedMillis int64) ([]byte, error) {
	if h.Timestamp < 0 || h.Timestamp > maxTimestampMillis {
		return dst, fmt.Errorf("%w: exchange timestamp %d exceeds 6 bytes", ErrEncodeOverflow, h.Timestamp)
	}
	if h.MarketType > MarketType_AmericanOption {
		return dst, fmt.Errorf("%w: market type %d", ErrUnknownEnum, h.MarketType)
	}
	if h.MsgType > MessageType_LongShortRatio {
		return dst, fmt.Errorf("%w: message type %d", ErrUnknownEnum, h.MsgType)
	}
	exchange, err := ExchangeCode(h.Exchange)
	if err != nil {
		return dst, err
	}
	pair, err := PairCode(h.Pair)
	if err != nil {
		return dst, err
	}

	var buf [Header_Size]byte
	putUint48(buf[0:6], uint64(h.Timestamp))
	putUint48(buf[6:12], uint64(receivedMillis)&maxTimestampMillis)
	buf[12] = exchange
	buf[13] = h.MarketType.Code()
	buf[14] = uint8(h.MsgType)
	binary.BigEndian.PutUint16(buf[15:17], pair)
	return append(dst, buf[:]...), nil
}

// Fill_Raw decodes the header from the front of b.
// Unknown codes map to sentinels; the received timestamp is discarded.
func (h *Header) Fill_Raw(b []byte) error {
	if len(b) < Header_Size {
		return unexpectedBytesError(len(b), Header_Size)
	}
	h.Timestamp = int64(uint48(b[0:6]))
	// b[6:12] is the received timestamp, read but not exposed
	h.Exchange = ExchangeName(b[12])
	h.MarketType = MarketTypeFromCode(b[13])
	h.MsgType = MessageTypeFromCode(b[14])
	h.Pair = PairName(binary.BigEndian.Uint16(b[15:17]))
	return nil
}

// PeekMessageType returns the message-type code of an encoded message
// without decoding the body.
func PeekMessageType(b []byte) (MessageType, error) {
	if len(b) < Header_Size {
		return MessageType_Other, unexpectedBytesError(len(b), Header_Size)
	}
	return MessageTypeFromCode(b[14]), nil
}
