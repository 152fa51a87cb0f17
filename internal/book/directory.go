package book

import "fmt"

// Directory maps an order id to the resting order's mutable fields.
// It is the Go analogue of original_source/src/arena.rs's OrderArena:
// the Rust source backs it with a HashMap keyed by order id, and a
// builtin map gives the same amortised O(1) get/insert/delete here.
type Directory struct {
	orders map[OrderID]*RestingOrder
}

// NewDirectory returns an empty directory pre-sized to capacity hint.
func NewDirectory(capacity int) *Directory {
	return &Directory{orders: make(map[OrderID]*RestingOrder, capacity)}
}

// Get returns the resting order for id, if any.
func (d *Directory) Get(id OrderID) (*RestingOrder, bool) {
	o, ok := d.orders[id]
	return o, ok
}

// Insert adds a new resting order to the directory. Inserting an id
// that already exists is a programmer error: the admission layer's
// monotonic sequence check (E5) guarantees this never happens on a
// correctly driven book.
func (d *Directory) Insert(id OrderID, userID UserID, side Side, price Price, qty Qty) {
	if _, exists := d.orders[id]; exists {
		panic(fmt.Sprintf("book: duplicate insert of order id %d", id))
	}
	d.orders[id] = &RestingOrder{
		ID:           id,
		UserID:       userID,
		Side:         side,
		Price:        price,
		RemainingQty: qty,
	}
}

// Delete removes id from the directory. Deleting an absent id is a
// no-op that reports false, matching OrderArena::delete's behaviour.
func (d *Directory) Delete(id OrderID) bool {
	if _, ok := d.orders[id]; !ok {
		return false
	}
	delete(d.orders, id)
	return true
}

// Len reports the number of resting orders currently tracked.
func (d *Directory) Len() int {
	return len(d.orders)
}
