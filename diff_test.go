// Copyright (c) 2025 Neomantra Corp

package market_test

import (
	"github.com/shopspring/decimal"

	market "github.com/allonshore/crypto-market"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// level builds an order with quote quantity derived as price*base, the way
// upstream parsers populate it.
func level(price, quantityBase string) market.Order {
	p, q := dec(price), dec(quantityBase)
	return market.Order{
		Price:         p,
		QuantityBase:  q,
		QuantityQuote: p.Mul(q),
	}
}

func ladderEquals(got, want []market.Order) {
	GinkgoHelper()
	Expect(got).To(HaveLen(len(want)))
	for i := range want {
		Expect(got[i].Price.Equal(want[i].Price)).To(BeTrue(),
			"level %d price: got %s want %s", i, got[i].Price, want[i].Price)
		Expect(got[i].QuantityBase.Equal(want[i].QuantityBase)).To(BeTrue(),
			"level %d base quantity: got %s want %s", i, got[i].QuantityBase, want[i].QuantityBase)
		Expect(got[i].QuantityQuote.Equal(want[i].QuantityQuote)).To(BeTrue(),
			"level %d quote quantity: got %s want %s", i, got[i].QuantityQuote, want[i].QuantityQuote)
	}
}

var _ = Describe("Diff", func() {
	Context("DiffLadder", func() {
		It("yields an empty delta for identical ladders", func() {
			old := []market.Order{level("100", "1"), level("101", "2")}
			latest := []market.Order{level("100", "1"), level("101", "2")}
			Expect(market.DiffLadder(old, latest, market.BookSide_Asks)).To(BeEmpty())
		})

		It("emits a quantity update with the new quantities", func() {
			old := []market.Order{level("100", "1"), level("101", "2")}
			latest := []market.Order{level("100", "1"), level("101", "3")}
			delta := market.DiffLadder(old, latest, market.BookSide_Asks)
			Expect(delta).To(HaveLen(1))
			Expect(delta[0].Price.Equal(dec("101"))).To(BeTrue())
			Expect(delta[0].QuantityBase.Equal(dec("3"))).To(BeTrue())
			Expect(delta[0].QuantityQuote.Equal(dec("303"))).To(BeTrue())
		})

		It("emits an insertion with the new quantities", func() {
			old := []market.Order{level("100", "1"), level("102", "2")}
			latest := []market.Order{level("100", "1"), level("101", "5"), level("102", "2")}
			delta := market.DiffLadder(old, latest, market.BookSide_Asks)
			Expect(delta).To(HaveLen(1))
			Expect(delta[0].Price.Equal(dec("101"))).To(BeTrue())
			Expect(delta[0].QuantityBase.Equal(dec("5"))).To(BeTrue())
		})

		It("marks interior removals with a present zero contract quantity", func() {
			old := []market.Order{level("100", "1"), level("101", "2"), level("102", "3")}
			latest := []market.Order{level("100", "1"), level("102", "3")}
			delta := market.DiffLadder(old, latest, market.BookSide_Asks)
			Expect(delta).To(HaveLen(1))
			Expect(delta[0].Price.Equal(dec("101"))).To(BeTrue())
			Expect(delta[0].QuantityBase.IsZero()).To(BeTrue())
			Expect(delta[0].QuantityQuote.IsZero()).To(BeTrue())
			Expect(delta[0].QuantityContract.Valid).To(BeTrue())
			Expect(delta[0].QuantityContract.Decimal.IsZero()).To(BeTrue())
		})

		It("marks trailing removals with an absent contract quantity", func() {
			old := []market.Order{level("100", "1"), level("101", "2"), level("102", "3")}
			latest := []market.Order{level("100", "1")}
			delta := market.DiffLadder(old, latest, market.BookSide_Asks)
			Expect(delta).To(HaveLen(2))
			for i, price := range []string{"101", "102"} {
				Expect(delta[i].Price.Equal(dec(price))).To(BeTrue())
				Expect(delta[i].QuantityBase.IsZero()).To(BeTrue())
				Expect(delta[i].QuantityContract.Valid).To(BeFalse())
			}
		})

		It("appends trailing additions verbatim", func() {
			old := []market.Order{level("100", "1")}
			latest := []market.Order{level("100", "1"), level("101", "2"), level("102", "3")}
			delta := market.DiffLadder(old, latest, market.BookSide_Asks)
			ladderEquals(delta, []market.Order{level("101", "2"), level("102", "3")})
		})

		It("honors the descending bid ordering", func() {
			old := []market.Order{level("101", "1"), level("100", "2")}
			latest := []market.Order{level("101", "1"), level("100.5", "4"), level("100", "2")}
			delta := market.DiffLadder(old, latest, market.BookSide_Bids)
			Expect(delta).To(HaveLen(1))
			Expect(delta[0].Price.Equal(dec("100.5"))).To(BeTrue())
			Expect(delta[0].QuantityBase.Equal(dec("4"))).To(BeTrue())
		})
	})

	Context("RestoreLadder", func() {
		It("returns the old ladder for an empty delta", func() {
			old := []market.Order{level("100", "1"), level("101", "2")}
			ladderEquals(market.RestoreLadder(old, nil, market.BookSide_Asks), old)
		})

		It("rebuilds from an empty old ladder", func() {
			latest := []market.Order{level("100", "1"), level("101", "2")}
			delta := market.DiffLadder(nil, latest, market.BookSide_Asks)
			ladderEquals(market.RestoreLadder(nil, delta, market.BookSide_Asks), latest)
		})

		It("restores every diff back to the latest ladder", func() {
			cases := []struct {
				side        market.BookSide
				old, latest []market.Order
			}{
				{ // S6: interior insertion
					market.BookSide_Asks,
					[]market.Order{level("100", "1"), level("102", "2")},
					[]market.Order{level("100", "1"), level("101", "5"), level("102", "2")},
				},
				{ // interior removal
					market.BookSide_Asks,
					[]market.Order{level("100", "1"), level("101", "2"), level("102", "3")},
					[]market.Order{level("100", "1"), level("102", "3")},
				},
				{ // full replacement
					market.BookSide_Asks,
					[]market.Order{level("10", "1"), level("12", "2")},
					[]market.Order{level("11", "4")},
				},
				{ // head insertion and tail removal
					market.BookSide_Asks,
					[]market.Order{level("100", "1"), level("101", "2"), level("103", "3")},
					[]market.Order{level("99", "9"), level("100", "1"), level("101", "7")},
				},
				{ // everything removed
					market.BookSide_Asks,
					[]market.Order{level("100", "1"), level("101", "2")},
					nil,
				},
				{ // everything added
					market.BookSide_Asks,
					nil,
					[]market.Order{level("100", "1"), level("101", "2")},
				},
				{ // unchanged
					market.BookSide_Asks,
					[]market.Order{level("100", "1"), level("101", "2")},
					[]market.Order{level("100", "1"), level("101", "2")},
				},
				{ // bids: insertion inside plus update
					market.BookSide_Bids,
					[]market.Order{level("101", "1"), level("100", "2"), level("99", "3")},
					[]market.Order{level("101.5", "4"), level("101", "1"), level("100", "6")},
				},
				{ // bids: interior removal
					market.BookSide_Bids,
					[]market.Order{level("101", "1"), level("100", "2"), level("99", "3")},
					[]market.Order{level("101", "1"), level("99", "3")},
				},
			}
			for i, c := range cases {
				delta := market.DiffLadder(c.old, c.latest, c.side)
				restored := market.RestoreLadder(c.old, delta, c.side)
				Expect(restored).To(HaveLen(len(c.latest)), "case %d", i)
				ladderEquals(restored, c.latest)
			}
		})
	})

	Context("order-book messages", func() {
		It("diffs and restores whole books", func() {
			old := &market.OrderBookMsg{
				Header: testHeader(market.MessageType_L2Event),
				Asks:   []market.Order{level("100", "1"), level("101", "2")},
				Bids:   []market.Order{level("99", "1"), level("98", "2")},
			}
			seq := uint64(42)
			latest := &market.OrderBookMsg{
				Header: testHeader(market.MessageType_L2Event),
				Asks:   []market.Order{level("100", "1"), level("101", "3")},
				Bids:   []market.Order{level("99.5", "5"), level("99", "1"), level("98", "2")},
				SeqID:  &seq,
			}

			diff := market.DiffOrderBooks(old, latest)
			Expect(diff.Header).To(Equal(latest.Header))
			Expect(diff.SeqID).To(Equal(latest.SeqID))
			Expect(diff.Asks).To(HaveLen(1))
			Expect(diff.Bids).To(HaveLen(1))

			restored := market.RestoreOrderBooks(old, diff)
			ladderEquals(restored.Asks, latest.Asks)
			ladderEquals(restored.Bids, latest.Bids)
		})

		It("yields empty ladders when diffing a book against itself", func() {
			book := &market.OrderBookMsg{
				Header: testHeader(market.MessageType_L2Event),
				Asks:   []market.Order{level("100", "1")},
				Bids:   []market.Order{level("99", "1")},
			}
			diff := market.DiffOrderBooks(book, book)
			Expect(diff.Asks).To(BeEmpty())
			Expect(diff.Bids).To(BeEmpty())
		})

		It("detects updates on decoded ladders with zero quote quantities", func() {
			old := []market.Order{
				{Price: dec("100"), QuantityBase: dec("1")},
				{Price: dec("101"), QuantityBase: dec("2")},
			}
			latest := []market.Order{
				{Price: dec("100"), QuantityBase: dec("1")},
				{Price: dec("101"), QuantityBase: decimal.New(3, 0)},
			}
			delta := market.DiffLadder(old, latest, market.BookSide_Asks)
			Expect(delta).To(HaveLen(1))
			restored := market.RestoreLadder(old, delta, market.BookSide_Asks)
			ladderEquals(restored, latest)
		})
	})
})
