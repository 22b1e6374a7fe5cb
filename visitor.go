// Copyright (c) 2025 Neomantra Corp

package market

type Visitor interface {
	OnOrderBook(msg *OrderBookMsg) error
	OnTrade(msg *TradeMsg) error
	OnBbo(msg *BboMsg) error
	OnKline(msg *KlineMsg) error

	OnStreamEnd() error
}
