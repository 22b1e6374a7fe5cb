// Copyright (c) 2025 Neomantra Corp
//
// JSON decoders for crawler-shaped message objects.
//
// Upstream parsers emit flat JSON objects with string enum names and
// numeric fields as either JSON numbers or strings. These decoders accept
// that shape so feeds can be re-encoded to the binary format without an
// intermediate struct layer.

package market

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/valyala/fastjson"
)

///////////////////////////////////////////////////////////////////////////////

// jsonDecimal reads a decimal from a string or number field.
func jsonDecimal(val *fastjson.Value, key string) (decimal.Decimal, error) {
	field := val.Get(key)
	if field == nil {
		return decimal.Decimal{}, nil
	}
	switch field.Type() {
	case fastjson.TypeString:
		return decimal.NewFromString(string(field.GetStringBytes()))
	case fastjson.TypeNumber:
		// use the raw token so float formatting never rounds the value
		return decimal.NewFromString(field.String())
	default:
		return decimal.Decimal{}, fmt.Errorf("field %q is not a number", key)
	}
}

func jsonNullDecimal(val *fastjson.Value, key string) (decimal.NullDecimal, error) {
	field := val.Get(key)
	if field == nil || field.Type() == fastjson.TypeNull {
		return decimal.NullDecimal{}, nil
	}
	d, err := jsonDecimal(val, key)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func fillHeader_Json(val *fastjson.Value, h *Header) error {
	h.Exchange = string(val.GetStringBytes("exchange"))
	h.Pair = string(val.GetStringBytes("pair"))
	h.Timestamp = val.GetInt64("timestamp")

	marketType, err := MarketTypeFromString(string(val.GetStringBytes("market_type")))
	if err != nil {
		return err
	}
	h.MarketType = marketType

	msgType, err := MessageTypeFromString(string(val.GetStringBytes("msg_type")))
	if err != nil {
		return err
	}
	h.MsgType = msgType
	return nil
}

func fillOrder_Json(val *fastjson.Value, o *Order) error {
	var err error
	if o.Price, err = jsonDecimal(val, "price"); err != nil {
		return err
	}
	if o.QuantityBase, err = jsonDecimal(val, "quantity_base"); err != nil {
		return err
	}
	if o.QuantityQuote, err = jsonDecimal(val, "quantity_quote"); err != nil {
		return err
	}
	if o.QuantityContract, err = jsonNullDecimal(val, "quantity_contract"); err != nil {
		return err
	}
	return nil
}

func fillLadder_Json(val *fastjson.Value, key string) ([]Order, error) {
	entries := val.GetArray(key)
	if entries == nil {
		return nil, nil
	}
	orders := make([]Order, len(entries))
	for i, entry := range entries {
		if err := fillOrder_Json(entry, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

///////////////////////////////////////////////////////////////////////////////

func (m *OrderBookMsg) Fill_Json(val *fastjson.Value) error {
	if err := fillHeader_Json(val, &m.Header); err != nil {
		return err
	}
	var err error
	if m.Asks, err = fillLadder_Json(val, "asks"); err != nil {
		return err
	}
	if m.Bids, err = fillLadder_Json(val, "bids"); err != nil {
		return err
	}
	m.Snapshot = val.GetBool("snapshot")
	m.SeqID = nil
	m.PrevSeqID = nil
	if seq := val.Get("seq_id"); seq != nil && seq.Type() == fastjson.TypeNumber {
		id := seq.GetUint64()
		m.SeqID = &id
	}
	if seq := val.Get("prev_seq_id"); seq != nil && seq.Type() == fastjson.TypeNumber {
		id := seq.GetUint64()
		m.PrevSeqID = &id
	}
	return nil
}

func (m *TradeMsg) Fill_Json(val *fastjson.Value) error {
	if err := fillHeader_Json(val, &m.Header); err != nil {
		return err
	}
	side, err := TradeSideFromString(string(val.GetStringBytes("side")))
	if err != nil {
		return err
	}
	m.Side = side
	if m.Price, err = jsonDecimal(val, "price"); err != nil {
		return err
	}
	if m.QuantityBase, err = jsonDecimal(val, "quantity_base"); err != nil {
		return err
	}
	return nil
}

func (m *BboMsg) Fill_Json(val *fastjson.Value) error {
	if err := fillHeader_Json(val, &m.Header); err != nil {
		return err
	}
	var err error
	if m.AskPrice, err = jsonDecimal(val, "ask_price"); err != nil {
		return err
	}
	if m.AskQuantityBase, err = jsonDecimal(val, "ask_quantity_base"); err != nil {
		return err
	}
	if m.BidPrice, err = jsonDecimal(val, "bid_price"); err != nil {
		return err
	}
	if m.BidQuantityBase, err = jsonDecimal(val, "bid_quantity_base"); err != nil {
		return err
	}
	return nil
}

func (m *KlineMsg) Fill_Json(val *fastjson.Value) error {
	if err := fillHeader_Json(val, &m.Header); err != nil {
		return err
	}
	m.Period = string(val.GetStringBytes("period"))
	var err error
	if m.Open, err = jsonDecimal(val, "open"); err != nil {
		return err
	}
	if m.High, err = jsonDecimal(val, "high"); err != nil {
		return err
	}
	if m.Low, err = jsonDecimal(val, "low"); err != nil {
		return err
	}
	if m.Close, err = jsonDecimal(val, "close"); err != nil {
		return err
	}
	if m.Volume, err = jsonDecimal(val, "volume"); err != nil {
		return err
	}
	return nil
}
