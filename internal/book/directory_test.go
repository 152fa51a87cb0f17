package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matchbook/internal/book"
)

func TestDirectoryInsertGetDelete(t *testing.T) {
	d := book.NewDirectory(4)

	_, ok := d.Get(1)
	assert.False(t, ok)

	d.Insert(1, 100, book.Bid, 395, 12)
	resting, ok := d.Get(1)
	assert.True(t, ok)
	assert.Equal(t, book.OrderID(1), resting.ID)
	assert.Equal(t, book.Price(395), resting.Price)
	assert.Equal(t, book.Qty(12), resting.RemainingQty)
	assert.Equal(t, 1, d.Len())

	resting.RemainingQty -= 5
	again, _ := d.Get(1)
	assert.Equal(t, book.Qty(7), again.RemainingQty)

	assert.True(t, d.Delete(1))
	_, ok = d.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, d.Len())
}

func TestDirectoryDeleteAbsentIsNoop(t *testing.T) {
	d := book.NewDirectory(4)
	assert.False(t, d.Delete(99))
}

func TestDirectoryInsertDuplicatePanics(t *testing.T) {
	d := book.NewDirectory(4)
	d.Insert(1, 1, book.Bid, 100, 10)
	assert.Panics(t, func() {
		d.Insert(1, 1, book.Bid, 100, 10)
	})
}
