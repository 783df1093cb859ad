package cart

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCartNotFound means the user never had a cart initialized.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound means the cart exists but holds no line for the product.
	ErrItemNotFound = errors.New("item not in cart")
)

// Line is one product entry in a user's cart. At most one line exists per
// (user, product); adding the same product again increments Quantity.
type Line struct {
	ProductID int64     `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// Store holds per-user carts in insertion order. Reading a cart through
// Lines initializes an empty one, which is visible in ActiveCarts; Clear
// empties a cart without deleting it.
type Store interface {
	Lines(ctx context.Context, userID string) ([]Line, error)
	Add(ctx context.Context, userID string, productID int64, qty int, at time.Time) ([]Line, error)
	Remove(ctx context.Context, userID string, productID int64) ([]Line, error)
	SetQuantity(ctx context.Context, userID string, productID int64, qty int) ([]Line, error)
	Clear(ctx context.Context, userID string) error
	ActiveCarts(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
