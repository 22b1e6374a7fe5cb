// Copyright (c) 2025 Neomantra Corp
//
// Message value types for the crypto-market binary format and their
// raw-byte decoders. The layout is fixed and big-endian throughout:
//
//	OrderBook: header, then one side block per side
//	           (1-byte side code, 2-byte body length, 10 bytes per level)
//	Trade:     header, 1-byte side, 5-byte price, 5-byte quantity
//	BBO:       header, ask price/quantity, bid price/quantity (5 bytes each)
//	Kline:     header, 1-byte period, OHLC (5 bytes each), 10-byte volume
//
// Messages are immutable value objects: upstream parsers create them, the
// codec consumes them once, the decoder reconstructs them.

package market

import (
	"encoding/binary"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"
)

///////////////////////////////////////////////////////////////////////////////

// Interface type for message decoding.
type Message interface {
}

type MessagePtr[M any] interface {
	*M // constrain to M or its pointer
	Message

	MsgType() MessageType
	Fill_Raw([]byte) error
	Fill_Json(val *fastjson.Value) error
}

///////////////////////////////////////////////////////////////////////////////

// Order is a single price level. Prices and quantities are decimals; the
// wire carries only price and base quantity.
type Order struct {
	Price            decimal.Decimal     `json:"price"`
	QuantityBase     decimal.Decimal     `json:"quantity_base"`
	QuantityQuote    decimal.Decimal     `json:"quantity_quote"`
	QuantityContract decimal.NullDecimal `json:"quantity_contract"`
}

// Each level is a 5-byte price and a 5-byte base quantity.
const orderWireSize = 2 * Numeric5_Size

func fillOrder_Raw(b []byte, o *Order) error {
	price, err := DecodeNumeric5(b[0:Numeric5_Size])
	if err != nil {
		return err
	}
	quantity, err := DecodeNumeric5(b[Numeric5_Size:orderWireSize])
	if err != nil {
		return err
	}
	o.Price = price
	o.QuantityBase = quantity
	o.QuantityQuote = decimal.Decimal{}
	o.QuantityContract = decimal.NullDecimal{}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// OrderBookMsg is a level-2 order book. Asks ascend, bids descend; equal
// prices within one ladder are disallowed.
type OrderBookMsg struct {
	Header    Header  `json:"header"`
	Asks      []Order `json:"asks"`
	Bids      []Order `json:"bids"`
	Snapshot  bool    `json:"snapshot"`
	SeqID     *uint64 `json:"seq_id,omitempty"`
	PrevSeqID *uint64 `json:"prev_seq_id,omitempty"`
}

// A side block holds at most 0xFFFF/10 levels in its 2-byte length.
const MaxLevelsPerSide = 0xFFFF / orderWireSize

// MsgType returns the generic book message type. Any book message type
// decodes into OrderBookMsg; see MessageType.IsBook.
func (*OrderBookMsg) MsgType() MessageType {
	return MessageType_L2Snapshot
}

// Fill_Raw decodes an order-book message. The side blocks run to the end
// of the buffer; the snapshot flag and sequence ids are not transmitted and
// come back as (true, nil, nil).
func (m *OrderBookMsg) Fill_Raw(b []byte) error {
	if err := m.Header.Fill_Raw(b); err != nil {
		return err
	}
	m.Asks = nil
	m.Bids = nil
	m.Snapshot = true
	m.SeqID = nil
	m.PrevSeqID = nil

	pos := Header_Size
	for pos < len(b) {
		if len(b)-pos < 3 {
			return unexpectedBytesError(len(b)-pos, 3)
		}
		side := b[pos]
		bodyLen := int(binary.BigEndian.Uint16(b[pos+1 : pos+3]))
		pos += 3
		if bodyLen%orderWireSize != 0 {
			return fmt.Errorf("%w: side body length %d is not a multiple of %d", ErrInvariantViolation, bodyLen, orderWireSize)
		}
		if len(b)-pos < bodyLen {
			return unexpectedBytesError(len(b)-pos, bodyLen)
		}
		count := bodyLen / orderWireSize
		orders := make([]Order, count)
		for i := 0; i < count; i++ {
			if err := fillOrder_Raw(b[pos:pos+orderWireSize], &orders[i]); err != nil {
				return err
			}
			pos += orderWireSize
		}
		switch BookSide(side) {
		case BookSide_Asks:
			m.Asks = append(m.Asks, orders...)
		case BookSide_Bids:
			m.Bids = append(m.Bids, orders...)
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// TradeMsg is a single executed trade.
type TradeMsg struct {
	Header       Header          `json:"header"`
	Side         TradeSide       `json:"side"`
	Price        decimal.Decimal `json:"price"`
	QuantityBase decimal.Decimal `json:"quantity_base"`
}

const TradeMsg_Size = Header_Size + 1 + 2*Numeric5_Size

func (*TradeMsg) MsgType() MessageType {
	return MessageType_Trade
}

func (m *TradeMsg) Fill_Raw(b []byte) error {
	if len(b) < TradeMsg_Size {
		return unexpectedBytesError(len(b), TradeMsg_Size)
	}
	if err := m.Header.Fill_Raw(b); err != nil {
		return err
	}
	body := b[Header_Size:]
	if TradeSide(body[0]) == TradeSide_Buy {
		m.Side = TradeSide_Buy
	} else {
		m.Side = TradeSide_Sell
	}
	price, err := DecodeNumeric5(body[1:6])
	if err != nil {
		return err
	}
	quantity, err := DecodeNumeric5(body[6:11])
	if err != nil {
		return err
	}
	m.Price = price
	m.QuantityBase = quantity
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// BboMsg is a top-of-book quote.
type BboMsg struct {
	Header          Header          `json:"header"`
	AskPrice        decimal.Decimal `json:"ask_price"`
	AskQuantityBase decimal.Decimal `json:"ask_quantity_base"`
	BidPrice        decimal.Decimal `json:"bid_price"`
	BidQuantityBase decimal.Decimal `json:"bid_quantity_base"`
}

const BboMsg_Size = Header_Size + 4*Numeric5_Size

func (*BboMsg) MsgType() MessageType {
	return MessageType_BBO
}

func (m *BboMsg) Fill_Raw(b []byte) error {
	if len(b) < BboMsg_Size {
		return unexpectedBytesError(len(b), BboMsg_Size)
	}
	if err := m.Header.Fill_Raw(b); err != nil {
		return err
	}
	body := b[Header_Size:]
	fields := []*decimal.Decimal{&m.AskPrice, &m.AskQuantityBase, &m.BidPrice, &m.BidQuantityBase}
	for i, field := range fields {
		value, err := DecodeNumeric5(body[i*Numeric5_Size : (i+1)*Numeric5_Size])
		if err != nil {
			return err
		}
		*field = value
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// KlineMsg is an OHLCV candlestick over a fixed period.
type KlineMsg struct {
	Header Header          `json:"header"`
	Period string          `json:"period"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

const KlineMsg_Size = Header_Size + 1 + 4*Numeric5_Size + Numeric10_Size

func (*KlineMsg) MsgType() MessageType {
	return MessageType_Candlestick
}

func (m *KlineMsg) Fill_Raw(b []byte) error {
	if len(b) < KlineMsg_Size {
		return unexpectedBytesError(len(b), KlineMsg_Size)
	}
	if err := m.Header.Fill_Raw(b); err != nil {
		return err
	}
	body := b[Header_Size:]
	m.Period = PeriodName(body[0])
	pos := 1
	fields := []*decimal.Decimal{&m.Open, &m.High, &m.Low, &m.Close}
	for _, field := range fields {
		value, err := DecodeNumeric5(body[pos : pos+Numeric5_Size])
		if err != nil {
			return err
		}
		*field = value
		pos += Numeric5_Size
	}
	volume, err := DecodeNumeric10(body[pos : pos+Numeric10_Size])
	if err != nil {
		return err
	}
	m.Volume = volume
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// DecodeOrderBook decodes a single order-book message.
func DecodeOrderBook(b []byte) (*OrderBookMsg, error) {
	msg := &OrderBookMsg{}
	if err := msg.Fill_Raw(b); err != nil {
		return nil, err
	}
	return msg, nil
}

// DecodeTrade decodes a single trade message.
func DecodeTrade(b []byte) (*TradeMsg, error) {
	msg := &TradeMsg{}
	if err := msg.Fill_Raw(b); err != nil {
		return nil, err
	}
	return msg, nil
}

// DecodeBbo decodes a single BBO message.
func DecodeBbo(b []byte) (*BboMsg, error) {
	msg := &BboMsg{}
	if err := msg.Fill_Raw(b); err != nil {
		return nil, err
	}
	return msg, nil
}

// DecodeKline decodes a single kline message.
func DecodeKline(b []byte) (*KlineMsg, error) {
	msg := &KlineMsg{}
	if err := msg.Fill_Raw(b); err != nil {
		return nil, err
	}
	return msg, nil
}
