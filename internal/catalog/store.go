package catalog

import "context"

// DefaultImage is used when a create request carries no image URL.
const DefaultImage = "https://via.placeholder.com/250x250"

// Product is a catalog record. JSON names are part of the public API
// contract, camelCase price fields included.
type Product struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Image         string  `json:"image"`
	Price         int64   `json:"price"`
	OriginalPrice int64   `json:"originalPrice"`
	Rating        float64 `json:"rating"`
	RatingCount   int     `json:"ratingCount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	InStock       bool    `json:"inStock"`
	StockCount    int     `json:"stockCount"`
}

// Filter narrows List results; every provided predicate must hold.
// Category is a case-insensitive exact match, price bounds are inclusive,
// Search is a case-insensitive substring match on the title only.
type Filter struct {
	Category string
	MinPrice *int64
	MaxPrice *int64
	Search   string
}

// Patch is a partial product update. Nil fields are left untouched.
// The id is never patchable.
type Patch struct {
	Title         *string  `json:"title"`
	Image         *string  `json:"image"`
	Price         *int64   `json:"price"`
	OriginalPrice *int64   `json:"originalPrice"`
	Rating        *float64 `json:"rating"`
	RatingCount   *int     `json:"ratingCount"`
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	InStock       *bool    `json:"inStock"`
	StockCount    *int     `json:"stockCount"`
}

// Store is the catalog repository. Create assigns ids as max(existing)+1;
// deleting the highest id frees that id for the next create, so callers
// must not assume ids are never reused.
type Store interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int64, patch Patch) (Product, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}

func applyPatch(p *Product, patch Patch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.RatingCount != nil {
		p.RatingCount = *patch.RatingCount
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.InStock != nil {
		p.InStock = *patch.InStock
	}
	if patch.StockCount != nil {
		p.StockCount = *patch.StockCount
	}
}
