// Copyright (c) 2025 Neomantra Corp

package market

import (
	"encoding/binary"
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////

// Codec encodes messages to their wire form. It is stateless apart from
// the injected Clock and safe for concurrent use.
type Codec struct {
	clock Clock
}

// NewCodec creates a Codec stamping received timestamps from clock.
// A nil clock uses the system wall clock.
func NewCodec(clock Clock) *Codec {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Codec{clock: clock}
}

func (c *Codec) nowMillis() int64 {
	return c.clock.Now().UnixMilli()
}

///////////////////////////////////////////////////////////////////////////////

// EncodeOrderBook encodes an order-book message: header, asks block, bids
// block. Only price and base quantity are transmitted per level.
func (c *Codec) EncodeOrderBook(m *OrderBookMsg) ([]byte, error) {
	size := Header_Size + 2*3 + (len(m.Asks)+len(m.Bids))*orderWireSize
	buf, err := m.Header.appendHeader(make([]byte, 0, size), c.nowMillis())
	if err != nil {
		return nil, err
	}
	if buf, err = appendSideBlock(buf, BookSide_Asks, m.Asks); err != nil {
		return nil, err
	}
	if buf, err = appendSideBlock(buf, BookSide_Bids, m.Bids); err != nil {
		return nil, err
	}
	return buf, nil
}

func appendSideBlock(dst []byte, side BookSide, orders []Order) ([]byte, error) {
	if len(orders) > MaxLevelsPerSide {
		return dst, fmt.Errorf("%w: %d %s levels exceed the 2-byte side length", ErrEncodeOverflow, len(orders), side)
	}
	dst = append(dst, byte(side))
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(orders)*orderWireSize))
	var err error
	for i := range orders {
		if dst, err = AppendNumeric5(dst, orders[i].Price); err != nil {
			return dst, err
		}
		if dst, err = AppendNumeric5(dst, orders[i].QuantityBase); err != nil {
			return dst, err
		}
	}
	return dst, nil
}

///////////////////////////////////////////////////////////////////////////////

// EncodeTrade encodes a trade message.
func (c *Codec) EncodeTrade(m *TradeMsg) ([]byte, error) {
	if m.Side != TradeSide_Buy && m.Side != TradeSide_Sell {
		return nil, fmt.Errorf("%w: trade side %d", ErrUnknownEnum, m.Side)
	}
	buf, err := m.Header.appendHeader(make([]byte, 0, TradeMsg_Size), c.nowMillis())
	if err != nil {
		return nil, err
	}
	buf = append(buf, byte(m.Side))
	if buf, err = AppendNumeric5(buf, m.Price); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.QuantityBase); err != nil {
		return nil, err
	}
	return buf, nil
}

///////////////////////////////////////////////////////////////////////////////

// EncodeBbo encodes a best-bid-offer message.
func (c *Codec) EncodeBbo(m *BboMsg) ([]byte, error) {
	buf, err := m.Header.appendHeader(make([]byte, 0, BboMsg_Size), c.nowMillis())
	if err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.AskPrice); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.AskQuantityBase); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.BidPrice); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.BidQuantityBase); err != nil {
		return nil, err
	}
	return buf, nil
}

///////////////////////////////////////////////////////////////////////////////

// EncodeKline encodes a candlestick message. Volume uses the 10-byte
// numeric form; quote volume is not transmitted.
func (c *Codec) EncodeKline(m *KlineMsg) ([]byte, error) {
	period, err := PeriodCode(m.Period)
	if err != nil {
		return nil, err
	}
	buf, err := m.Header.appendHeader(make([]byte, 0, KlineMsg_Size), c.nowMillis())
	if err != nil {
		return nil, err
	}
	buf = append(buf, period)
	if buf, err = AppendNumeric5(buf, m.Open); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.High); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.Low); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric5(buf, m.Close); err != nil {
		return nil, err
	}
	if buf, err = AppendNumeric10(buf, m.Volume); err != nil {
		return nil, err
	}
	return buf, nil
}
