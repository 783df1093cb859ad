package cart

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAddMergesSameProduct(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := s.Add(ctx, "u1", 3, 2, now); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, err := s.Add(ctx, "u1", 3, 1, now.Add(time.Second))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 3 {
		t.Fatalf("expected summed quantity 3, got %d", lines[0].Quantity)
	}
	if !lines[0].AddedAt.Equal(now) {
		t.Fatalf("merge should keep the original addedAt, got %v", lines[0].AddedAt)
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()
	now := time.Now().UTC()

	for i, pid := range []int64{5, 2, 9} {
		if _, err := s.Add(ctx, "u1", pid, 1, now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	lines, err := s.Lines(ctx, "u1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	want := []int64{5, 2, 9}
	for i, pid := range want {
		if lines[i].ProductID != pid {
			t.Fatalf("order not preserved: got %v", lines)
		}
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", 3, 2, time.Now()); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := s.SetQuantity(ctx, "u1", 3, 0)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %v", lines)
	}

	if _, err := s.SetQuantity(ctx, "u1", 3, 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestSetQuantityUpdates(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", 7, 1, time.Now()); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := s.SetQuantity(ctx, "u1", 7, 5)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 5 {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestRemoveRequiresInitializedCart(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.Remove(ctx, "nobody", 1); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound, got %v", err)
	}

	// An initialized but empty cart makes removal of an absent item a no-op.
	if _, err := s.Lines(ctx, "u1"); err != nil {
		t.Fatalf("lines: %v", err)
	}
	lines, err := s.Remove(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("remove on empty cart: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("unexpected lines: %v", lines)
	}
}

func TestClearKeepsCartEntry(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if _, err := s.Add(ctx, "u1", 1, 1, time.Now()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Clear(ctx, "u1"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	lines, err := s.Lines(ctx, "u1")
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart not emptied: %v", lines)
	}

	n, err := s.ActiveCarts(ctx)
	if err != nil {
		t.Fatalf("active carts: %v", err)
	}
	if n != 1 {
		t.Fatalf("clear should keep the cart entry, active=%d", n)
	}

	// Clearing an unknown user is a no-op and creates nothing.
	if err := s.Clear(ctx, "ghost"); err != nil {
		t.Fatalf("clear unknown: %v", err)
	}
	if n, _ := s.ActiveCarts(ctx); n != 1 {
		t.Fatalf("clear created a cart, active=%d", n)
	}
}

func TestLinesInitializesCart(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	if n, _ := s.ActiveCarts(ctx); n != 0 {
		t.Fatalf("expected no carts, got %d", n)
	}
	if _, err := s.Lines(ctx, "fresh"); err != nil {
		t.Fatalf("lines: %v", err)
	}
	if n, _ := s.ActiveCarts(ctx); n != 1 {
		t.Fatalf("reading a cart should initialize it, active=%d", n)
	}
}
