package cart

import "lightshop/pkg/catalog"

// Engine owns the cart of one session. Every command returns the derived
// view so callers render from the returned state. An Engine is not safe for
// concurrent use.
type Engine struct {
	cart     Cart
	notifier Notifier
}

// NewEngine returns an engine holding an empty cart. A nil notifier discards
// notices.
func NewEngine(n Notifier) *Engine {
	if n == nil {
		n = discard{}
	}
	return &Engine{notifier: n}
}

// Restore replaces the cart with lines, merging repeated product ids into the
// first occurrence and dropping lines with a non-positive quantity. No notices
// are emitted.
func (e *Engine) Restore(lines []Line) {
	e.cart = Cart{}
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := e.cart.find(l.Product.ID); i >= 0 {
			e.cart.lines[i].Quantity += l.Quantity
			continue
		}
		e.cart.lines = append(e.cart.lines, l)
	}
}

// Cart returns the current cart.
func (e *Engine) Cart() Cart {
	return Cart{lines: e.cart.Lines()}
}

// Add puts one unit of p in the cart. A product already present has its
// quantity incremented; a new product is appended as the last line.
func (e *Engine) Add(p catalog.Product) View {
	if i := e.cart.find(p.ID); i >= 0 {
		e.cart.lines[i].Quantity++
	} else {
		e.cart.lines = append(e.cart.lines, Line{Product: p, Quantity: 1})
	}
	e.notifier.Notify(Notice{Kind: Success, Message: MsgAdded, Description: p.Name})
	return e.View()
}

// Remove deletes the line for productID. Removing an absent id leaves the
// cart unchanged.
func (e *Engine) Remove(productID int) View {
	if i := e.cart.find(productID); i >= 0 {
		lines := make([]Line, 0, len(e.cart.lines)-1)
		lines = append(lines, e.cart.lines[:i]...)
		e.cart.lines = append(lines, e.cart.lines[i+1:]...)
	}
	e.notifier.Notify(Notice{Kind: Info, Message: MsgRemoved})
	return e.View()
}

// Checkout confirms the order intent. The cart is neither cleared nor sent
// anywhere. It reports false, with an informational notice, when the cart is
// empty.
func (e *Engine) Checkout() (View, bool) {
	if e.cart.State() == Empty {
		e.notifier.Notify(Notice{Kind: Info, Message: MsgEmpty})
		return e.View(), false
	}
	e.notifier.Notify(Notice{Kind: Success, Message: MsgOrderSent})
	return e.View(), true
}

// View computes the derived state of the cart.
func (e *Engine) View() View {
	return NewView(e.cart)
}

// ViewLine is a cart line with its total.
type ViewLine struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal int             `json:"line_total"`
}

// View is the read-only projection handed to the presentation layer.
type View struct {
	Lines         []ViewLine `json:"lines"`
	GrandTotal    int        `json:"grand_total"`
	ItemCount     int        `json:"item_count"`
	TotalQuantity int        `json:"total_quantity"`
	State         State      `json:"state"`
}

// NewView derives the view of c.
func NewView(c Cart) View {
	v := View{
		Lines:         make([]ViewLine, 0, c.Len()),
		GrandTotal:    GrandTotal(c),
		ItemCount:     ItemCount(c),
		TotalQuantity: TotalQuantity(c),
		State:         c.State(),
	}
	for _, l := range c.lines {
		v.Lines = append(v.Lines, ViewLine{Product: l.Product, Quantity: l.Quantity, LineTotal: LineTotal(l)})
	}
	return v
}
