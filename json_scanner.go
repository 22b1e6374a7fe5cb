// Copyright (c) 2025 Neomantra Corp

package market

import (
	"bufio"
	"io"

	"github.com/valyala/fastjson"
)

///////////////////////////////////////////////////////////////////////////////

// JsonScanner scans a series of crawler JSON objects, one object per line.
type JsonScanner struct {
	scanner *bufio.Scanner
}

// NewJsonScanner creates a new market.JsonScanner from an io.Reader
func NewJsonScanner(r io.Reader) *JsonScanner {
	return &JsonScanner{
		scanner: bufio.NewScanner(r),
	}
}

// Next advances to the next JSON value in the data.
// Returns false either on error or on the end of data. Call Error() in order to determine the cause of the returned false.
func (s *JsonScanner) Next() bool {
	return s.scanner.Scan()
}

// Error returns the last error from Next().
func (s *JsonScanner) Error() error {
	return s.scanner.Err()
}

// Parses the Scanner's current value as a `Message`.
// This a plain function (not a method) because methods cannot be generic.
func JsonScannerDecode[M Message, MP MessagePtr[M]](s *JsonScanner) (*M, error) {
	val, msgType, err := s.parseWithType()
	if err != nil {
		return nil, err
	}

	var mp MP = new(M)

	if !msgType.IsCompatibleWith(mp.MsgType()) {
		return nil, unexpectedMsgTypeError(msgType, mp.MsgType())
	}

	if err := mp.Fill_Json(val); err != nil {
		return nil, err
	}
	return mp, nil
}

// Parses the current value and passes it to the Visitor.
func (s *JsonScanner) Visit(visitor Visitor) error {
	val, msgType, err := s.parseWithType()
	if err != nil {
		return err
	}
	return dispatchJsonVisitor(val, msgType, visitor)
}

///////////////////////////////////////////////////////////////////////////////

func (s *JsonScanner) parseWithType() (*fastjson.Value, MessageType, error) {
	var p fastjson.Parser
	val, err := p.ParseBytes(s.scanner.Bytes())
	if err != nil {
		return nil, MessageType_Other, err
	}
	msgType, err := MessageTypeFromString(string(val.GetStringBytes("msg_type")))
	if err != nil {
		return nil, MessageType_Other, err
	}
	return val, msgType, nil
}

func dispatchJsonVisitor(val *fastjson.Value, msgType MessageType, visitor Visitor) error {
	switch {
	case msgType.IsBook():
		msg := OrderBookMsg{}
		if err := msg.Fill_Json(val); err != nil {
			return err
		}
		return visitor.OnOrderBook(&msg)
	case msgType == MessageType_Trade:
		msg := TradeMsg{}
		if err := msg.Fill_Json(val); err != nil {
			return err
		}
		return visitor.OnTrade(&msg)
	case msgType == MessageType_BBO:
		msg := BboMsg{}
		if err := msg.Fill_Json(val); err != nil {
			return err
		}
		return visitor.OnBbo(&msg)
	case msgType == MessageType_Candlestick:
		msg := KlineMsg{}
		if err := msg.Fill_Json(val); err != nil {
			return err
		}
		return visitor.OnKline(&msg)
	default:
		return unexpectedMsgTypeError(msgType, MessageType_Other)
	}
}
