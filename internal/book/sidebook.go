package book

import "github.com/tidwall/btree"

// SideBook is an ordered map from price to PriceLevel for one side of
// the book, backed by github.com/tidwall/btree, grounded directly on
// saiputravu-Exchange/internal/engine/orderbook.go's
// `PriceLevels = btree.BTreeG[*PriceLevel]`.
//
// The comparator is chosen so that Min() always returns the best
// price for that side without an extra reversal step: the bid tree
// sorts price-descending (so Min() is the highest bid, exactly the
// trick the teacher file's Match() loop relies on via
// book.bids.MinMut()), the ask tree sorts price-ascending (so Min()
// is the lowest ask). Scan() then walks each side in priority order
// for free.
//
// Empty price levels are deleted eagerly rather than kept as dead
// keys (see SPEC_FULL.md's Open Question decisions), so every level
// present in the tree is guaranteed non-empty.
type SideBook struct {
	tree          *btree.BTreeG[*PriceLevel]
	queueCapacity int
}

// NewBidBook returns a side book ordered so Min()/Scan() favour the
// highest price first.
func NewBidBook(queueCapacity int) *SideBook {
	return &SideBook{
		tree: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price > b.Price
		}),
		queueCapacity: queueCapacity,
	}
}

// NewAskBook returns a side book ordered so Min()/Scan() favour the
// lowest price first.
func NewAskBook(queueCapacity int) *SideBook {
	return &SideBook{
		tree: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price < b.Price
		}),
		queueCapacity: queueCapacity,
	}
}

// Best returns the top-of-book price level for this side, if any.
func (sb *SideBook) Best() (*PriceLevel, bool) {
	return sb.tree.Min()
}

// Get returns the price level at price, if any, without creating it.
func (sb *SideBook) Get(price Price) (*PriceLevel, bool) {
	return sb.tree.Get(&PriceLevel{Price: price})
}

// GetOrCreate returns the price level at price, creating an empty one
// (pre-sized to the queue capacity hint) if it does not exist yet.
func (sb *SideBook) GetOrCreate(price Price) *PriceLevel {
	if level, ok := sb.tree.Get(&PriceLevel{Price: price}); ok {
		return level
	}
	level := &PriceLevel{Price: price, Orders: make([]OrderID, 0, sb.queueCapacity)}
	sb.tree.Set(level)
	return level
}

// DeleteIfEmpty removes level from the tree if its queue is empty.
func (sb *SideBook) DeleteIfEmpty(level *PriceLevel) {
	if len(level.Orders) == 0 {
		sb.tree.Delete(level)
	}
}

// Scan walks price levels on this side in priority order (best first),
// stopping early if fn returns false.
func (sb *SideBook) Scan(fn func(level *PriceLevel) bool) {
	sb.tree.Scan(fn)
}

// Len reports the number of distinct (non-empty) price levels.
func (sb *SideBook) Len() int {
	return sb.tree.Len()
}

// Levels returns up to max non-empty price levels in priority order.
// Used for depth snapshots.
func (sb *SideBook) Levels(max int) []*PriceLevel {
	levels := make([]*PriceLevel, 0, max)
	sb.tree.Scan(func(level *PriceLevel) bool {
		if len(levels) >= max {
			return false
		}
		levels = append(levels, level)
		return true
	})
	return levels
}
