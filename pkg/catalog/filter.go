package catalog

import (
	"fmt"
	"strings"
)

// Selection is the category tab chosen by the visitor. The zero value selects
// everything.
type Selection struct {
	category Category
}

// SelectAll matches every product.
var SelectAll = Selection{}

// Select returns the selection matching only c.
func Select(c Category) Selection {
	return Selection{category: c}
}

// All reports whether the selection matches every product.
func (s Selection) All() bool { return s.category == 0 }

// Category returns the selected category and false for SelectAll.
func (s Selection) Category() (Category, bool) {
	return s.category, s.category != 0
}

func (s Selection) String() string {
	if s.All() {
		return "all"
	}
	return s.category.String()
}

// ParseSelection accepts "all", "garland" or "decor". An empty string is
// treated as "all".
func ParseSelection(s string) (Selection, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "all" {
		return SelectAll, nil
	}
	c, err := ParseCategory(v)
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %q", ErrInvalidSelection, s)
	}
	return Select(c), nil
}

// Filter projects products down to sel, keeping relative order. SelectAll
// returns products unchanged.
func Filter(products []Product, sel Selection) []Product {
	c, ok := sel.Category()
	if !ok {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
