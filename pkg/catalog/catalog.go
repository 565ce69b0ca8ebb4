// Package catalog holds the read-only product feed of the storefront and the
// category filter applied to it.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Category is the closed set of product categories.
type Category uint8

const (
	Garland Category = iota + 1
	Decor
)

func (c Category) String() string {
	switch c {
	case Garland:
		return "garland"
	case Decor:
		return "decor"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c == Garland || c == Decor
}

// ParseCategory maps the wire name of a category to its value.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "garland":
		return Garland, nil
	case "decor":
		return Decor, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Product is one purchasable item. Products are immutable once loaded.
type Product struct {
	ID        int      `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Price     int      `json:"price" yaml:"price"`
	Category  Category `json:"category" yaml:"category"`
	Image     string   `json:"image" yaml:"image"`
	Features  []string `json:"features" yaml:"features"`
	Occasions []string `json:"occasions" yaml:"occasions"`
	Power     string   `json:"power" yaml:"power"`
}

// Validate checks the fields the storefront relies on.
func (p Product) Validate() error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: id %d is not positive", ErrInvalidProduct, p.ID)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: product %d has no name", ErrInvalidProduct, p.ID)
	case p.Price < 0:
		return fmt.Errorf("%w: product %d has negative price", ErrInvalidProduct, p.ID)
	case !p.Category.Valid():
		return fmt.Errorf("%w: product %d has no category", ErrInvalidProduct, p.ID)
	}
	return nil
}

var (
	// ErrInvalidCategory indicates a category name outside the closed set.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidSelection indicates a filter selection outside {all, garland, decor}.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrInvalidProduct indicates a product that fails validation.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrDuplicateID indicates two products sharing an id.
	ErrDuplicateID = errors.New("duplicate product id")
	// ErrUnknownProduct indicates the requested product is not in the catalog.
	ErrUnknownProduct = errors.New("product not found")
)

// Provider supplies the product feed at startup.
type Provider interface {
	Load(ctx context.Context) ([]Product, error)
}

// Catalog is an ordered, immutable product list indexed by id.
type Catalog struct {
	products []Product
	index    map[int]int
}

// New validates products and freezes them into a Catalog. The input order is
// kept as the catalog order.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := c.index[p.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, clone(p))
	}
	return c, nil
}

// Load reads the feed from p and builds a Catalog from it.
func Load(ctx context.Context, p Provider) (*Catalog, error) {
	products, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	return New(products)
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns a copy of the catalog in its original order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = clone(p)
	}
	return out
}

// Get looks a product up by id.
func (c *Catalog) Get(id int) (Product, error) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %d", ErrUnknownProduct, id)
	}
	return clone(c.products[i]), nil
}

// Filter returns the products matching sel in catalog order.
func (c *Catalog) Filter(sel Selection) []Product {
	return Filter(c.Products(), sel)
}

func clone(p Product) Product {
	p.Features = append([]string(nil), p.Features...)
	p.Occasions = append([]string(nil), p.Occasions...)
	return p
}
