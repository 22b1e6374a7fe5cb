// Copyright (c) 2025 Neomantra Corp
//
// Incremental order-book diffs.
//
// DiffLadder turns two price-sorted ladders into a delta of changed levels;
// RestoreLadder applies such a delta back onto the old ladder. Both are a
// two-pointer merge over the side's price ordering (asks ascend, bids
// descend) and run in O(|old|+|new|).
//
// Delta entries:
//   - update: the level's price with its new quantities
//   - addition: the new level verbatim
//   - removal: zero quantities; interior removals carry a valid zero
//     contract quantity, trailing removals carry an invalid one
//
// Restore consumes each delta entry exactly once, so
// RestoreLadder(old, DiffLadder(old, latest, side), side) reproduces latest.

package market

import "github.com/shopspring/decimal"

// crossedInside reports whether price a sits strictly inside the book
// relative to price b on the given side: a lower ask or a higher bid.
func crossedInside(a, b decimal.Decimal, side BookSide) bool {
	if side == BookSide_Bids {
		return a.GreaterThan(b)
	}
	return a.LessThan(b)
}

// removedLevel builds a removal delta entry. Interior removals mark the
// contract quantity as a present zero, trailing removals leave it absent.
func removedLevel(price decimal.Decimal, interior bool) Order {
	return Order{
		Price:            price,
		QuantityContract: decimal.NullDecimal{Valid: interior},
	}
}

// isRemoval reports whether a delta entry removes its level.
func isRemoval(o *Order) bool {
	return o.QuantityBase.IsZero() && o.QuantityQuote.IsZero()
}

///////////////////////////////////////////////////////////////////////////////

// DiffLadder computes the delta from old to latest on one side.
// Both inputs must be sorted for the side with distinct prices.
func DiffLadder(old, latest []Order, side BookSide) []Order {
	var delta []Order
	i, j := 0, 0
	for i < len(latest) && j < len(old) {
		newOrder, oldOrder := &latest[i], &old[j]
		switch {
		case newOrder.Price.Equal(oldOrder.Price):
			if !newOrder.QuantityBase.Equal(oldOrder.QuantityBase) ||
				!newOrder.QuantityQuote.Equal(oldOrder.QuantityQuote) {
				delta = append(delta, Order{
					Price:            oldOrder.Price,
					QuantityBase:     newOrder.QuantityBase,
					QuantityQuote:    newOrder.QuantityQuote,
					QuantityContract: newOrder.QuantityContract,
				})
			}
			i++
			j++
		case crossedInside(newOrder.Price, oldOrder.Price, side):
			// level inserted ahead of old[j]
			delta = append(delta, *newOrder)
			i++
		default:
			// old[j] no longer present
			delta = append(delta, removedLevel(oldOrder.Price, true))
			j++
		}
	}
	for ; i < len(latest); i++ {
		delta = append(delta, latest[i])
	}
	for ; j < len(old); j++ {
		delta = append(delta, removedLevel(old[j].Price, false))
	}
	return delta
}

// RestoreLadder applies a delta produced by DiffLadder onto old,
// returning the rebuilt side.
func RestoreLadder(old, delta []Order, side BookSide) []Order {
	var result []Order
	k := 0
	for m := range old {
		oldOrder := &old[m]
		// additions strictly inside the current old level come first
		for k < len(delta) && !delta[k].Price.Equal(oldOrder.Price) &&
			crossedInside(delta[k].Price, oldOrder.Price, side) {
			result = append(result, delta[k])
			k++
		}
		if k < len(delta) && delta[k].Price.Equal(oldOrder.Price) {
			entry := &delta[k]
			k++
			if isRemoval(entry) {
				continue
			}
			result = append(result, *entry)
			continue
		}
		result = append(result, *oldOrder)
	}
	result = append(result, delta[k:]...)
	return result
}

///////////////////////////////////////////////////////////////////////////////

// DiffOrderBooks computes the incremental update between two successive
// snapshots of the same book. Header and sequencing fields carry over from
// latest.
func DiffOrderBooks(old, latest *OrderBookMsg) *OrderBookMsg {
	return &OrderBookMsg{
		Header:    latest.Header,
		Asks:      DiffLadder(old.Asks, latest.Asks, BookSide_Asks),
		Bids:      DiffLadder(old.Bids, latest.Bids, BookSide_Bids),
		Snapshot:  latest.Snapshot,
		SeqID:     latest.SeqID,
		PrevSeqID: latest.PrevSeqID,
	}
}

// RestoreOrderBooks rebuilds the latest snapshot from the previous one and
// a diff. Header and sequencing fields carry over from the diff.
func RestoreOrderBooks(old, diff *OrderBookMsg) *OrderBookMsg {
	return &OrderBookMsg{
		Header:    diff.Header,
		Asks:      RestoreLadder(old.Asks, diff.Asks, BookSide_Asks),
		Bids:      RestoreLadder(old.Bids, diff.Bids, BookSide_Bids),
		Snapshot:  diff.Snapshot,
		SeqID:     diff.SeqID,
		PrevSeqID: diff.PrevSeqID,
	}
}
