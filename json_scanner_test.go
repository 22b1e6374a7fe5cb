// Copyright (c) 2025 Neomantra Corp

package market_test

import (
	"strings"

	market "github.com/allonshore/crypto-market"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const crawlerTradeJson = `{"exchange":"binance","market_type":"spot","symbol":"BTCUSDT","pair":"BTC/USDT","msg_type":"trade","timestamp":1700000000000,"side":"sell","price":"42638.5","quantity_base":"0.0125"}`

const crawlerBookJson = `{"exchange":"okx","market_type":"linear_swap","symbol":"BTC-USDT-SWAP","pair":"BTC/USDT","msg_type":"l2_event","timestamp":1700000000000,"snapshot":false,"seq_id":7,"asks":[{"price":"100.0","quantity_base":"1.5","quantity_quote":150,"quantity_contract":15}],"bids":[{"price":"99.5","quantity_base":"2.0","quantity_quote":"199"}]}`

const crawlerBboJson = `{"exchange":"huobi","market_type":"spot","symbol":"btcusdt","pair":"BTC/USDT","msg_type":"bbo","timestamp":1700000000000,"ask_price":100.1,"ask_quantity_base":1,"bid_price":100,"bid_quantity_base":2}`

const crawlerKlineJson = `{"exchange":"kucoin","market_type":"spot","symbol":"BTC-USDT","pair":"BTC/USDT","msg_type":"candlestick","timestamp":1700000000000,"period":"30m","open":"99","high":"101","low":"98.5","close":"100","volume":"12345.678"}`

var _ = Describe("JsonScanner", func() {
	It("decodes crawler trade objects", func() {
		scanner := market.NewJsonScanner(strings.NewReader(crawlerTradeJson))
		Expect(scanner.Next()).To(BeTrue())
		msg, err := market.JsonScannerDecode[market.TradeMsg](scanner)
		Expect(err).To(BeNil())
		Expect(msg.Header.Exchange).To(Equal("binance"))
		Expect(msg.Header.MarketType).To(Equal(market.MarketType_Spot))
		Expect(msg.Header.MsgType).To(Equal(market.MessageType_Trade))
		Expect(msg.Header.Pair).To(Equal("BTC/USDT"))
		Expect(msg.Header.Timestamp).To(Equal(int64(1700000000000)))
		Expect(msg.Side).To(Equal(market.TradeSide_Sell))
		Expect(msg.Price.Equal(dec("42638.5"))).To(BeTrue())
		Expect(msg.QuantityBase.Equal(dec("0.0125"))).To(BeTrue())
	})

	It("decodes crawler book objects with mixed number forms", func() {
		scanner := market.NewJsonScanner(strings.NewReader(crawlerBookJson))
		Expect(scanner.Next()).To(BeTrue())
		msg, err := market.JsonScannerDecode[market.OrderBookMsg](scanner)
		Expect(err).To(BeNil())
		Expect(msg.Header.Exchange).To(Equal("okx"))
		Expect(msg.Header.MarketType).To(Equal(market.MarketType_LinearSwap))
		Expect(msg.Snapshot).To(BeFalse())
		Expect(msg.SeqID).ToNot(BeNil())
		Expect(*msg.SeqID).To(Equal(uint64(7)))
		Expect(msg.Asks).To(HaveLen(1))
		Expect(msg.Asks[0].QuantityQuote.Equal(dec("150"))).To(BeTrue())
		Expect(msg.Asks[0].QuantityContract.Valid).To(BeTrue())
		Expect(msg.Asks[0].QuantityContract.Decimal.Equal(dec("15"))).To(BeTrue())
		Expect(msg.Bids).To(HaveLen(1))
		Expect(msg.Bids[0].QuantityContract.Valid).To(BeFalse())
	})

	It("dispatches mixed streams to the visitor", func() {
		stream := strings.Join([]string{
			crawlerTradeJson, crawlerBookJson, crawlerBboJson, crawlerKlineJson,
		}, "\n")
		scanner := market.NewJsonScanner(strings.NewReader(stream))
		visitor := &countingVisitor{}
		for scanner.Next() {
			Expect(scanner.Visit(visitor)).To(Succeed())
		}
		Expect(scanner.Error()).To(BeNil())
		Expect(visitor.trades).To(Equal(1))
		Expect(visitor.books).To(Equal(1))
		Expect(visitor.bbos).To(Equal(1))
		Expect(visitor.klines).To(Equal(1))
	})

	It("re-encodes crawler JSON to the binary format", func() {
		scanner := market.NewJsonScanner(strings.NewReader(crawlerKlineJson))
		Expect(scanner.Next()).To(BeTrue())
		msg, err := market.JsonScannerDecode[market.KlineMsg](scanner)
		Expect(err).To(BeNil())

		codec := market.NewCodec(testClock)
		b, err := codec.EncodeKline(msg)
		Expect(err).To(BeNil())
		decoded, err := market.DecodeKline(b)
		Expect(err).To(BeNil())
		Expect(decoded.Period).To(Equal("30m"))
		Expect(decoded.Volume.Equal(dec("12345.678"))).To(BeTrue())
		Expect(decoded.Header.Exchange).To(Equal("kucoin"))
	})

	It("rejects mismatched message types", func() {
		scanner := market.NewJsonScanner(strings.NewReader(crawlerTradeJson))
		Expect(scanner.Next()).To(BeTrue())
		_, err := market.JsonScannerDecode[market.BboMsg](scanner)
		Expect(err).ToNot(BeNil())
	})
})
