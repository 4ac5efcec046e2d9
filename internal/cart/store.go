package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain"
)

// Store holds the line items of one session's cart. Lines are unique by
// product id and keep insertion order. None of the mutations fail:
// invalid input (quantity below 1, unknown product id) degrades to a
// no-op instead of an error. Totals are recomputed from the current
// lines on every read, so they can never go stale.
type Store struct {
	mu    sync.RWMutex
	lines []domain.CartLine
}

func NewStore() *Store {
	return &Store{}
}

// AddItem accumulates quantity onto the existing line for the product,
// or appends a new line. When the line already exists its stored
// metadata wins; the incoming ref is ignored beyond its product id.
// A quantity below 1 is a no-op.
func (s *Store) AddItem(ref domain.ProductRef, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == ref.ProductID {
			s.lines[i].Quantity += quantity
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{ProductRef: ref, Quantity: quantity})
}

// RemoveItem deletes the line for the product. Unknown ids are a no-op.
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, line := range s.lines {
		if line.ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the line's quantity exactly. A quantity below
// 1 is a no-op: it neither removes nor clamps the line, callers wanting
// removal must use RemoveItem. Unknown ids are a no-op as well.
func (s *Store) UpdateQuantity(productID int64, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear removes all lines unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalCount is the sum of all line quantities.
func (s *Store) TotalCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// TotalPrice is the sum of effective price times quantity over all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}
