package catalog

import (
	"context"
	"strings"
	"testing"
)

func int64p(v int64) *int64 { return &v }

func TestListFilterCombinations(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	all, err := s.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 8 {
		t.Fatalf("expected 8 seed products, got %d", len(all))
	}

	cases := []struct {
		name string
		f    Filter
	}{
		{"category only", Filter{Category: "electronics"}},
		{"min price", Filter{MinPrice: int64p(100000)}},
		{"max price", Filter{MaxPrice: int64p(30000)}},
		{"price band", Filter{MinPrice: int64p(24900), MaxPrice: int64p(89990)}},
		{"search", Filter{Search: "SAMSUNG"}},
		{"all together", Filter{Category: "Mobiles", MinPrice: int64p(1), MaxPrice: int64p(200000), Search: "galaxy"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.List(ctx, tc.f)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) > len(all) {
				t.Fatalf("filtered result larger than store: %d > %d", len(got), len(all))
			}
			for _, p := range got {
				if tc.f.Category != "" && !strings.EqualFold(p.Category, tc.f.Category) {
					t.Errorf("product %d category %q does not match filter %q", p.ID, p.Category, tc.f.Category)
				}
				if tc.f.MinPrice != nil && p.Price < *tc.f.MinPrice {
					t.Errorf("product %d price %d below min %d", p.ID, p.Price, *tc.f.MinPrice)
				}
				if tc.f.MaxPrice != nil && p.Price > *tc.f.MaxPrice {
					t.Errorf("product %d price %d above max %d", p.ID, p.Price, *tc.f.MaxPrice)
				}
				if tc.f.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(tc.f.Search)) {
					t.Errorf("product %d title %q does not contain %q", p.ID, p.Title, tc.f.Search)
				}
			}
		})
	}
}

func TestPriceBoundsInclusive(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	// AirPods Pro cost exactly 24900.
	got, err := s.List(ctx, Filter{MinPrice: int64p(24900), MaxPrice: int64p(24900)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected exactly the AirPods record, got %v", got)
	}
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	p, err := s.Create(ctx, Product{Title: "Test Widget", Price: 100, OriginalPrice: 200, Category: "Test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != 9 {
		t.Fatalf("expected id 9, got %d", p.ID)
	}

	got, ok, err := s.Get(ctx, p.ID)
	if err != nil || !ok {
		t.Fatalf("get created: ok=%v err=%v", ok, err)
	}
	if got != p {
		t.Fatalf("get mismatch: %+v != %+v", got, p)
	}
}

func TestCreateReusesHighestDeletedID(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	if ok, err := s.Delete(ctx, 8); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}

	p, err := s.Create(ctx, Product{Title: "Replacement", Price: 1, OriginalPrice: 1, Category: "Test"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != 8 {
		t.Fatalf("max+1 assignment should reuse id 8, got %d", p.ID)
	}
}

func TestUpdateMergesAndKeepsID(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	title := "Renamed"
	price := int64(1234)
	p, ok, err := s.Update(ctx, 3, Patch{Title: &title, Price: &price})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if p.ID != 3 || p.Title != "Renamed" || p.Price != 1234 {
		t.Fatalf("unexpected product after patch: %+v", p)
	}
	if p.Category != "Electronics" {
		t.Fatalf("untouched field changed: %q", p.Category)
	}

	if _, ok, _ := s.Update(ctx, 999, Patch{Title: &title}); ok {
		t.Fatal("update of unknown id reported found")
	}
}

func TestDeleteThenGet(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	if ok, err := s.Delete(ctx, 5); err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := s.Get(ctx, 5); ok {
		t.Fatal("deleted product still retrievable")
	}
	if ok, _ := s.Delete(ctx, 5); ok {
		t.Fatal("second delete reported found")
	}
}

func TestSearchSeedIphone(t *testing.T) {
	s := NewMemStore(SeedProducts())

	got, err := s.Search(context.Background(), "iphone")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected exactly one result, got %d", len(got))
	}
	if got[0].ID != 1 || !strings.Contains(got[0].Title, "iPhone 15 Pro Max") {
		t.Fatalf("unexpected result: %+v", got[0])
	}
}

func TestSearchMatchesDescriptionAndCategory(t *testing.T) {
	s := NewMemStore(SeedProducts())
	ctx := context.Background()

	byCategory, err := s.Search(ctx, "appliances")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].ID != 5 {
		t.Fatalf("category search: %+v", byCategory)
	}

	byDescription, err := s.Search(ctx, "noise-cancelling")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byDescription) != 1 || byDescription[0].ID != 3 {
		t.Fatalf("description search: %+v", byDescription)
	}
}

func TestCategoriesSortedDistinct(t *testing.T) {
	s := NewMemStore(SeedProducts())

	got, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}

	want := []string{"Appliances", "Electronics", "Mobiles"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
