// Copyright (c) 2025 Neomantra Corp
//
// Wire codes for the crypto-market binary format.
//
// Decoding is best-effort: codes absent from the tables map to sentinel
// values, since they can arise from protocol version skew. Encoding is
// strict: a value absent from the tables is a programming error and fails
// with ErrUnknownEnum.

package market

import (
	"encoding/json"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Exchange
///////////////////////////////////////////////////////////////////////////////

// Sentinel exchange name for unknown codes.
const ExchangeUnknown = "unknow"

// exchangeCodes maps canonical lowercased exchange names to wire codes.
var exchangeCodes = map[string]uint8{
	"crypto":  1,
	"ftx":     2,
	"binance": 3,
	"huobi":   8,
	"kucoin":  10,
	"okx":     11,
}

// ExchangeCode returns the wire code for a canonical exchange name.
func ExchangeCode(exchange string) (uint8, error) {
	if code, ok := exchangeCodes[exchange]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: exchange %q", ErrUnknownEnum, exchange)
}

// ExchangeName returns the canonical exchange name for a wire code,
// or the "unknow" sentinel.
func ExchangeName(code uint8) string {
	switch code {
	case 1:
		return "crypto"
	case 2:
		return "ftx"
	case 3:
		return "binance"
	case 8:
		return "huobi"
	case 10:
		return "kucoin"
	case 11:
		return "okx"
	default:
		return ExchangeUnknown
	}
}

///////////////////////////////////////////////////////////////////////////////
// Symbol pair
///////////////////////////////////////////////////////////////////////////////

// Sentinel pair name for unknown codes.
const PairUnknown = "UNKNOWN"

// pairCodes maps "BASE/QUOTE" pair identifiers to wire codes.
var pairCodes = map[string]uint16{
	"BTC/USDT": 1,
	"BTC/USD":  2,
	"USDT/USD": 3,
}

// PairCode returns the wire code for a "BASE/QUOTE" pair identifier.
func PairCode(pair string) (uint16, error) {
	if code, ok := pairCodes[pair]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: pair %q", ErrUnknownEnum, pair)
}

// PairName returns the pair identifier for a wire code, or the "UNKNOWN" sentinel.
func PairName(code uint16) string {
	switch code {
	case 1:
		return "BTC/USDT"
	case 2:
		return "BTC/USD"
	case 3:
		return "USDT/USD"
	default:
		return PairUnknown
	}
}

///////////////////////////////////////////////////////////////////////////////
// MarketType
///////////////////////////////////////////////////////////////////////////////

// MarketType is the kind of market an instrument trades on.
type MarketType uint8

const (
	MarketType_Unknown        MarketType = 0
	MarketType_Spot           MarketType = 1
	MarketType_LinearFuture   MarketType = 2
	MarketType_InverseFuture  MarketType = 3
	MarketType_LinearSwap     MarketType = 4
	MarketType_InverseSwap    MarketType = 5
	MarketType_EuropeanOption MarketType = 6
	MarketType_QuantoFuture   MarketType = 7
	MarketType_QuantoSwap     MarketType = 8

	// The following market types exist upstream but have no wire code;
	// they encode as 0.
	MarketType_Move           MarketType = 9
	MarketType_BVOL           MarketType = 10
	MarketType_AmericanOption MarketType = 11
)

// Code returns the wire code for the MarketType.
// Market types without a code of their own collapse to 0.
func (m MarketType) Code() uint8 {
	if m <= MarketType_QuantoSwap {
		return uint8(m)
	}
	return 0
}

// MarketTypeFromCode returns the MarketType for a wire code,
// or MarketType_Unknown.
func MarketTypeFromCode(code uint8) MarketType {
	if code >= 1 && code <= uint8(MarketType_QuantoSwap) {
		return MarketType(code)
	}
	return MarketType_Unknown
}

func (m MarketType) String() string {
	switch m {
	case MarketType_Spot:
		return "spot"
	case MarketType_LinearFuture:
		return "linear_future"
	case MarketType_InverseFuture:
		return "inverse_future"
	case MarketType_LinearSwap:
		return "linear_swap"
	case MarketType_InverseSwap:
		return "inverse_swap"
	case MarketType_EuropeanOption:
		return "european_option"
	case MarketType_QuantoFuture:
		return "quanto_future"
	case MarketType_QuantoSwap:
		return "quanto_swap"
	case MarketType_Move:
		return "move"
	case MarketType_BVOL:
		return "bvol"
	case MarketType_AmericanOption:
		return "american_option"
	default:
		return "unknown"
	}
}

// MarketTypeFromString returns the MarketType for its snake_case name.
func MarketTypeFromString(str string) (MarketType, error) {
	switch strings.ToLower(str) {
	case "unknown":
		return MarketType_Unknown, nil
	case "spot":
		return MarketType_Spot, nil
	case "linear_future":
		return MarketType_LinearFuture, nil
	case "inverse_future":
		return MarketType_InverseFuture, nil
	case "linear_swap":
		return MarketType_LinearSwap, nil
	case "inverse_swap":
		return MarketType_InverseSwap, nil
	case "european_option":
		return MarketType_EuropeanOption, nil
	case "quanto_future":
		return MarketType_QuantoFuture, nil
	case "quanto_swap":
		return MarketType_QuantoSwap, nil
	case "move":
		return MarketType_Move, nil
	case "bvol":
		return MarketType_BVOL, nil
	case "american_option":
		return MarketType_AmericanOption, nil
	default:
		return MarketType_Unknown, fmt.Errorf("%w: market type %q", ErrUnknownEnum, str)
	}
}

func (m MarketType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MarketType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	mt, err := MarketTypeFromString(str)
	if err != nil {
		return err
	}
	*m = mt
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// MessageType
///////////////////////////////////////////////////////////////////////////////

// MessageType is the kind of market-data message.
type MessageType uint8

const (
	MessageType_Other          MessageType = 0
	MessageType_Trade          MessageType = 1
	MessageType_BBO            MessageType = 2
	MessageType_L2TopK         MessageType = 3
	MessageType_L2Snapshot     MessageType = 4
	MessageType_L2Event        MessageType = 5
	MessageType_L3Snapshot     MessageType = 6
	MessageType_L3Event        MessageType = 7
	MessageType_Ticker         MessageType = 8
	MessageType_Candlestick    MessageType = 9
	MessageType_OpenInterest   MessageType = 10
	MessageType_FundingRate    MessageType = 11
	MessageType_LongShortRatio MessageType = 12
	// TakerVolume shares code 12 with LongShortRatio on the wire.
	MessageType_TakerVolume MessageType = 12
)

// MessageTypeFromCode returns the MessageType for a wire code,
// or MessageType_Other.
func MessageTypeFromCode(code uint8) MessageType {
	if code <= uint8(MessageType_LongShortRatio) {
		return MessageType(code)
	}
	return MessageType_Other
}

// IsBook reports whether the message type carries an order-book ladder body.
func (m MessageType) IsBook() bool {
	switch m {
	case MessageType_L2TopK, MessageType_L2Snapshot, MessageType_L2Event,
		MessageType_L3Snapshot, MessageType_L3Event:
		return true
	default:
		return false
	}
}

// IsCompatibleWith reports whether two message types decode to the same
// message struct. All book message types are mutually compatible.
func (m MessageType) IsCompatibleWith(other MessageType) bool {
	if m == other {
		return true
	}
	return m.IsBook() && other.IsBook()
}

func (m MessageType) String() string {
	switch m {
	case MessageType_Trade:
		return "trade"
	case MessageType_BBO:
		return "bbo"
	case MessageType_L2TopK:
		return "l2_topk"
	case MessageType_L2Snapshot:
		return "l2_snapshot"
	case MessageType_L2Event:
		return "l2_event"
	case MessageType_L3Snapshot:
		return "l3_snapshot"
	case MessageType_L3Event:
		return "l3_event"
	case MessageType_Ticker:
		return "ticker"
	case MessageType_Candlestick:
		return "candlestick"
	case MessageType_OpenInterest:
		return "open_interest"
	case MessageType_FundingRate:
		return "funding_rate"
	case MessageType_LongShortRatio:
		return "long_short_ratio"
	default:
		return "other"
	}
}

// MessageTypeFromString returns the MessageType for its snake_case name.
func MessageTypeFromString(str string) (MessageType, error) {
	switch strings.ToLower(str) {
	case "other":
		return MessageType_Other, nil
	case "trade":
		return MessageType_Trade, nil
	case "bbo":
		return MessageType_BBO, nil
	case "l2_topk":
		return MessageType_L2TopK, nil
	case "l2_snapshot":
		return MessageType_L2Snapshot, nil
	case "l2_event":
		return MessageType_L2Event, nil
	case "l3_snapshot":
		return MessageType_L3Snapshot, nil
	case "l3_event":
		return MessageType_L3Event, nil
	case "ticker":
		return MessageType_Ticker, nil
	case "candlestick":
		return MessageType_Candlestick, nil
	case "open_interest":
		return MessageType_OpenInterest, nil
	case "funding_rate":
		return MessageType_FundingRate, nil
	case "long_short_ratio":
		return MessageType_LongShortRatio, nil
	case "taker_volume":
		return MessageType_TakerVolume, nil
	default:
		return MessageType_Other, fmt.Errorf("%w: message type %q", ErrUnknownEnum, str)
	}
}

func (m MessageType) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MessageType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	mt, err := MessageTypeFromString(str)
	if err != nil {
		return err
	}
	*m = mt
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// BookSide
///////////////////////////////////////////////////////////////////////////////

// BookSide identifies one side of an order book.
type BookSide uint8

const (
	BookSide_Asks BookSide = 1
	BookSide_Bids BookSide = 2
)

func (s BookSide) String() string {
	switch s {
	case BookSide_Asks:
		return "asks"
	case BookSide_Bids:
		return "bids"
	default:
		return "unknown"
	}
}

///////////////////////////////////////////////////////////////////////////////
// TradeSide
///////////////////////////////////////////////////////////////////////////////

// TradeSide is the aggressing side of a trade.
type TradeSide uint8

const (
	TradeSide_Buy  TradeSide = 1
	TradeSide_Sell TradeSide = 2
)

func (s TradeSide) String() string {
	switch s {
	case TradeSide_Buy:
		return "buy"
	case TradeSide_Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// TradeSideFromString returns the TradeSide for its name.
func TradeSideFromString(str string) (TradeSide, error) {
	switch strings.ToLower(str) {
	case "buy":
		return TradeSide_Buy, nil
	case "sell":
		return TradeSide_Sell, nil
	default:
		return TradeSide_Sell, fmt.Errorf("%w: trade side %q", ErrUnknownEnum, str)
	}
}

func (s TradeSide) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TradeSide) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	side, err := TradeSideFromString(str)
	if err != nil {
		return err
	}
	*s = side
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// Kline period
///////////////////////////////////////////////////////////////////////////////

// Sentinel period name for unknown codes.
const PeriodUnknown = "unknow"

// periodCodes maps candlestick period names to wire codes.
var periodCodes = map[string]uint8{
	"1m":  1,
	"5m":  2,
	"30m": 3,
	"1h":  4,
}

// PeriodCode returns the wire code for a candlestick period name.
func PeriodCode(period string) (uint8, error) {
	if code, ok := periodCodes[period]; ok {
		return code, nil
	}
	return 0, fmt.Errorf("%w: period %q", ErrUnknownEnum, period)
}

// PeriodName returns the period name for a wire code, or the "unknow" sentinel.
func PeriodName(code uint8) string {
	switch code {
	case 1:
		return "1m"
	case 2:
		return "5m"
	case 3:
		return "30m"
	case 4:
		return "1h"
	default:
		return PeriodUnknown
	}
}
