package cart

import "context"

// Item is the stored form of a line: the product is kept by id only and
// resolved against the catalog on load.
type Item struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Store keeps the cart of each live session. Loading a session without a
// cart returns no items and no error.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]Item, error)
	Save(ctx context.Context, sessionID string, items []Item) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

// Items converts c to its stored form.
func Items(c Cart) []Item {
	out := make([]Item, 0, c.Len())
	for _, l := range c.lines {
		out = append(out, Item{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return out
}
