// Package cart implements the visitor's shopping cart: an ordered list of
// product lines with derived totals, mutated only through an Engine.
package cart

import (
	"fmt"

	"lightshop/pkg/catalog"
)

// Line pairs a product with the quantity held in the cart.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered sequence of lines, one per distinct product id, in the
// order products were first added.
type Cart struct {
	lines []Line
}

// Lines returns a copy of the lines in insertion order.
func (c Cart) Lines() []Line {
	return append([]Line(nil), c.lines...)
}

// Len returns the number of lines.
func (c Cart) Len() int { return len(c.lines) }

// State returns whether the cart holds any line.
func (c Cart) State() State {
	if len(c.lines) == 0 {
		return Empty
	}
	return NonEmpty
}

func (c Cart) find(productID int) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// State is the observable condition of a cart.
type State uint8

const (
	Empty State = iota
	NonEmpty
)

func (s State) String() string {
	if s == NonEmpty {
		return "non_empty"
	}
	return "empty"
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "empty":
		*s = Empty
	case "non_empty":
		*s = NonEmpty
	default:
		return fmt.Errorf("unknown cart state %q", b)
	}
	return nil
}

// LineTotal is price times quantity.
func LineTotal(l Line) int {
	return l.Product.Price * l.Quantity
}

// GrandTotal sums the line totals of c. An empty cart totals 0.
func GrandTotal(c Cart) int {
	total := 0
	for _, l := range c.lines {
		total += LineTotal(l)
	}
	return total
}

// ItemCount is the number of distinct lines, as shown on the cart badge.
func ItemCount(c Cart) int {
	return len(c.lines)
}

// TotalQuantity sums the quantities of all lines.
func TotalQuantity(c Cart) int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
