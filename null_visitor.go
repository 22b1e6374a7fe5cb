// Copyright (c) 2025 Neomantra Corp

package market

// NullVisitor is an implementation of all the market.Visitor interface.
// It is useful for copy/pasting to ones own implementation.
type NullVisitor struct {
}

func (v *NullVisitor) OnOrderBook(msg *OrderBookMsg) error {
	return nil
}

func (v *NullVisitor) OnTrade(msg *TradeMsg) error {
	return nil
}

func (v *NullVisitor) OnBbo(msg *BboMsg) error {
	return nil
}

func (v *NullVisitor) OnKline(msg *KlineMsg) error {
	return nil
}

func (v *NullVisitor) OnStreamEnd() error {
	return nil
}
