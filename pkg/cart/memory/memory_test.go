package memory

import (
	"context"
	"testing"

	"lightshop/pkg/cart"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	s := New()

	items, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %v", items)
	}

	want := []cart.Item{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}
	if err := s.Save(ctx, "s1", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want[0].Quantity = 99

	got, err := s.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || got[0].Quantity != 2 || got[1].ProductID != 2 {
		t.Fatalf("unexpected items: %v", got)
	}

	if err := s.Save(ctx, "s1", nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty session to be forgotten, have %d", s.Len())
	}

	_ = s.Save(ctx, "s2", want)
	if err := s.Delete(ctx, "s2"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := s.Load(ctx, "s2"); len(got) != 0 {
		t.Fatalf("expected no items after delete, got %v", got)
	}
}
