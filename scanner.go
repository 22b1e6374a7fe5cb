// Copyright (c) 2025 Neomantra Corp
//
// Stream container for encoded messages.
//
// The message format itself carries no length prefix, so streams frame each
// message with a 4-byte big-endian payload length. Scanner consumes such a
// stream; StreamWriter produces one.

package market

import (
	"bufio"
	"encoding/binary"
	"io"
)

///////////////////////////////////////////////////////////////////////////////

// Default buffer size for decoding
const DEFAULT_DECODE_BUFFER_SIZE = 16 * 1024
const DEFAULT_SCRATCH_BUFFER_SIZE = 4 * 1024

// Frame length prefix width
const frameHeaderSize = 4

// Frames beyond this are treated as corrupt rather than allocated.
const maxFrameSize = 16 * 1024 * 1024

// Scanner scans a raw stream of length-framed messages.
type Scanner struct {
	srcReader  io.Reader     // the source we pull data from
	buffReader *bufio.Reader // the buffer reader we scan over
	lastError  error         // the last error encountered
	lastRecord []byte        // last message read, waiting for decode
	lastSize   int           // the size of the last message read
}

// NewScanner creates a new market.Scanner
func NewScanner(sourceReader io.Reader) *Scanner {
	return &Scanner{
		srcReader:  sourceReader,
		buffReader: bufio.NewReaderSize(sourceReader, DEFAULT_DECODE_BUFFER_SIZE),
		lastError:  nil,
		lastRecord: make([]byte, DEFAULT_SCRATCH_BUFFER_SIZE),
		lastSize:   0,
	}
}

// Error returns the last error from Next().  May be io.EOF.
func (s *Scanner) Error() error {
	return s.lastError
}

// GetLastHeader returns the Header of the last message read, or an error
func (s *Scanner) GetLastHeader() (Header, error) {
	var header Header
	err := header.Fill_Raw(s.lastRecord[:s.lastSize])
	return header, err
}

// GetLastRecord returns the raw bytes of the last message read
func (s *Scanner) GetLastRecord() []byte {
	return s.lastRecord[:s.lastSize]
}

// GetLastSize returns the size of the last message read
func (s *Scanner) GetLastSize() int {
	return s.lastSize
}

// Next reads the next framed message from the stream
func (s *Scanner) Next() bool {
	var prefix [frameHeaderSize]byte
	if _, err := io.ReadFull(s.buffReader, prefix[:]); err != nil {
		s.lastError = err
		s.lastSize = 0
		return false
	}
	frameLen := int(binary.BigEndian.Uint32(prefix[:]))
	if frameLen < Header_Size || frameLen > maxFrameSize {
		s.lastError = ErrMalformedFrame
		s.lastSize = 0
		return false
	}
	if frameLen > len(s.lastRecord) {
		s.lastRecord = make([]byte, frameLen)
	}
	numRead, err := io.ReadFull(s.buffReader, s.lastRecord[:frameLen])
	if err != nil {
		s.lastError = err
		s.lastSize = numRead
		return false
	}
	s.lastError = nil
	s.lastSize = frameLen
	return true
}

// Parses the Scanner's current message as a `Message`.
// This a plain function because receiver functions cannot be generic.
func ScannerDecode[M Message, MP MessagePtr[M]](s *Scanner) (*M, error) {
	if s.lastSize < Header_Size {
		return nil, ErrNoMessage
	}

	// Object to return, instantiating an M and putting it in an MP
	var mp MP = new(M)

	// Make sure it's the right message type
	msgType := MessageTypeFromCode(s.lastRecord[14])
	if !msgType.IsCompatibleWith(mp.MsgType()) {
		return nil, unexpectedMsgTypeError(msgType, mp.MsgType())
	}

	if err := mp.Fill_Raw(s.lastRecord[:s.lastSize]); err != nil {
		return nil, err
	}
	return mp, nil
}

// Parses the current message and passes it to the Visitor.
func (s *Scanner) Visit(visitor Visitor) error {
	if s.lastSize < Header_Size {
		return ErrNoMessage
	}
	record := s.lastRecord[:s.lastSize]

	switch msgType := MessageTypeFromCode(record[14]); {
	case msgType.IsBook():
		msg := OrderBookMsg{}
		if err := msg.Fill_Raw(record); err != nil {
			return err
		}
		return visitor.OnOrderBook(&msg)
	case msgType == MessageType_Trade:
		msg := TradeMsg{}
		if err := msg.Fill_Raw(record); err != nil {
			return err
		}
		return visitor.OnTrade(&msg)
	case msgType == MessageType_BBO:
		msg := BboMsg{}
		if err := msg.Fill_Raw(record); err != nil {
			return err
		}
		return visitor.OnBbo(&msg)
	case msgType == MessageType_Candlestick:
		msg := KlineMsg{}
		if err := msg.Fill_Raw(record); err != nil {
			return err
		}
		return visitor.OnKline(&msg)
	default:
		return unexpectedMsgTypeError(msgType, MessageType_Other)
	}
}

/////////////////////////////////////////////////////////////////////////////

// ReadStreamToSlice reads an entire framed stream from an io.Reader.
// It will scan for type M (for example TradeMsg) and decode it into a slice of M.
// Returns the slice and any error.
// Example:
//
//	fileReader, err := os.Open(streamFilename)
//	trades, err := market.ReadStreamToSlice[market.TradeMsg](fileReader)
func ReadStreamToSlice[M Message, MP MessagePtr[M]](reader io.Reader) ([]M, error) {
	messages := make([]M, 0)
	scanner := NewScanner(reader)
	for scanner.Next() {
		m, err := ScannerDecode[M, MP](scanner)
		if err != nil {
			return messages, err
		}
		messages = append(messages, *m)
	}
	err := scanner.Error()
	if err == io.EOF {
		// In this function, EOF is not propagated as an error
		err = nil
	}
	return messages, err
}
