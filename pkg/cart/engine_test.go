package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightshop/pkg/catalog"
)

var (
	prodA = catalog.Product{ID: 1, Name: "A", Price: 1290, Category: catalog.Garland}
	prodB = catalog.Product{ID: 2, Name: "B", Price: 890, Category: catalog.Garland}
	prodC = catalog.Product{ID: 3, Name: "C", Price: 1590, Category: catalog.Decor}
)

func TestAddAccumulatesLines(t *testing.T) {
	rec := &Recorder{}
	e := NewEngine(rec)

	e.Add(prodA)
	e.Add(prodB)
	v := e.Add(prodA)

	want := []ViewLine{
		{Product: prodA, Quantity: 2, LineTotal: 2580},
		{Product: prodB, Quantity: 1, LineTotal: 890},
	}
	if diff := cmp.Diff(want, v.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3470, v.GrandTotal)
	assert.Equal(t, 2, v.ItemCount)
	assert.Equal(t, 3, v.TotalQuantity)
	assert.Equal(t, NonEmpty, v.State)

	notices := rec.Notices()
	require.Len(t, notices, 3)
	assert.Equal(t, Notice{Kind: Success, Message: MsgAdded, Description: "A"}, notices[0])
	assert.Equal(t, "B", notices[1].Description)
}

func TestAddSameProductNTimes(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		e := NewEngine(nil)
		for i := 0; i < n; i++ {
			e.Add(prodC)
		}
		lines := e.Cart().Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, n, lines[0].Quantity)
	}
}

func TestAddDistinctProductsCountsLines(t *testing.T) {
	e := NewEngine(nil)
	for i, p := range []catalog.Product{prodC, prodA, prodB} {
		v := e.Add(p)
		assert.Equal(t, i+1, v.ItemCount)
	}
	got := Items(e.Cart())
	assert.Equal(t, []Item{{3, 1}, {1, 1}, {2, 1}}, got)
}

func TestRemove(t *testing.T) {
	rec := &Recorder{}
	e := NewEngine(rec)
	e.Add(prodA)
	e.Add(prodB)
	e.Add(prodA)

	v := e.Remove(prodA.ID)
	assert.Equal(t, []ViewLine{{Product: prodB, Quantity: 1, LineTotal: 890}}, v.Lines)
	assert.Equal(t, 890, v.GrandTotal)
	assert.Equal(t, 1, v.ItemCount)

	last := rec.Notices()[len(rec.Notices())-1]
	assert.Equal(t, Notice{Kind: Info, Message: MsgRemoved}, last)
}

func TestRemoveIsIdempotent(t *testing.T) {
	e := NewEngine(nil)
	e.Add(prodA)
	e.Add(prodB)

	first := e.Remove(prodB.ID)
	second := e.Remove(prodB.ID)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second remove changed the cart (-first +second):\n%s", diff)
	}

	missing := e.Remove(42)
	assert.Equal(t, first, missing)
}

func TestRemoveLastLineEmptiesCart(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, NonEmpty, e.Add(prodA).State)
	v := e.Remove(prodA.ID)
	assert.Equal(t, Empty, v.State)
	assert.Zero(t, v.GrandTotal)
	assert.Empty(t, v.Lines)
}

func TestCheckoutEmpty(t *testing.T) {
	rec := &Recorder{}
	e := NewEngine(rec)

	v, placed := e.Checkout()
	assert.False(t, placed)
	assert.Equal(t, Empty, v.State)
	assert.Equal(t, []Notice{{Kind: Info, Message: MsgEmpty}}, rec.Notices())
}

func TestCheckoutKeepsCart(t *testing.T) {
	rec := &Recorder{}
	e := NewEngine(rec)
	e.Add(prodA)
	before := e.View()

	v, placed := e.Checkout()
	assert.True(t, placed)
	assert.Equal(t, before, v)
	assert.Equal(t, Notice{Kind: Success, Message: MsgOrderSent}, rec.Notices()[1])
}

func TestGrandTotalMatchesLineSum(t *testing.T) {
	e := NewEngine(nil)
	ops := []func(){
		func() { e.Add(prodA) },
		func() { e.Add(prodC) },
		func() { e.Add(prodA) },
		func() { e.Remove(prodB.ID) },
		func() { e.Add(prodB) },
		func() { e.Add(prodC) },
		func() { e.Remove(prodA.ID) },
		func() { e.Add(prodA) },
	}
	for i, op := range ops {
		op()
		c := e.Cart()
		sum := 0
		for _, l := range c.Lines() {
			sum += l.Product.Price * l.Quantity
		}
		assert.Equal(t, sum, GrandTotal(c), "after op %d", i)
	}
}

func TestRestoreMergesAndDropsInvalid(t *testing.T) {
	e := NewEngine(nil)
	e.Restore([]Line{
		{Product: prodB, Quantity: 2},
		{Product: prodA, Quantity: 0},
		{Product: prodB, Quantity: 1},
		{Product: prodC, Quantity: 1},
	})
	assert.Equal(t, []Item{{2, 3}, {3, 1}}, Items(e.Cart()))
}

func TestCartLinesAreCopies(t *testing.T) {
	e := NewEngine(nil)
	e.Add(prodA)
	lines := e.Cart().Lines()
	lines[0].Quantity = 50
	assert.Equal(t, 1, e.Cart().Lines()[0].Quantity)
}

func TestPureFunctionsOnEmptyCart(t *testing.T) {
	var c Cart
	assert.Zero(t, GrandTotal(c))
	assert.Zero(t, ItemCount(c))
	assert.Zero(t, TotalQuantity(c))
	assert.Equal(t, "empty", c.State().String())
	assert.Equal(t, 2580, LineTotal(Line{Product: prodA, Quantity: 2}))
}

func TestNoticeTexts(t *testing.T) {
	rec := &Recorder{}
	e := NewEngine(rec)
	e.Add(prodA)
	e.Remove(prodA.ID)
	e.Checkout()
	e.Add(prodA)
	e.Checkout()

	var got []string
	for _, n := range rec.Notices() {
		got = append(got, n.Message)
	}
	assert.Equal(t, []string{
		"Добавлено в корзину!",
		"Товар удалён из корзины",
		"Корзина пуста",
		"Добавлено в корзину!",
		"Спасибо за заказ! Мы свяжемся с вами.",
	}, got)
}
