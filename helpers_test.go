// Copyright (c) 2025 Neomantra Corp

package market_test

import (
	"time"

	market "github.com/allonshore/crypto-market"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Helpers", func() {
	Context("conversion", func() {
		It("converts timestamps to Time correctly", func() {
			Expect(market.TimestampToTime(0).UTC()).To(Equal(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)))
			Expect(market.TimestampToTime(1700000000000).UTC()).To(Equal(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)))
		})
		It("converts Time to timestamps correctly", func() {
			t := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
			Expect(market.TimeToTimestamp(t)).To(Equal(int64(1700000000000)))
		})
	})
})
