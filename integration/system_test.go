//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var health struct {
		Success       bool `json:"success"`
		ProductsCount int  `json:"products_count"`
	}
	doJSON(t, http.MethodGet, baseURL+"/api/health", nil, &health, 200)
	if !health.Success || health.ProductsCount == 0 {
		t.Fatalf("unexpected health: %+v", health)
	}

	var products struct {
		Products []struct {
			ID    int64 `json:"id"`
			Price int64 `json:"price"`
		} `json:"products"`
	}
	doJSON(t, http.MethodGet, baseURL+"/api/products", nil, &products, 200)
	if len(products.Products) == 0 {
		t.Fatalf("expected non-empty products")
	}

	user := "e2e-" + uuid.NewString()
	first := products.Products[0]

	doJSON(t, http.MethodPost, baseURL+"/api/cart", map[string]any{
		"user_id":    user,
		"product_id": first.ID,
		"quantity":   2,
	}, nil, 200)

	var gotCart struct {
		Total int64 `json:"total"`
		Count int   `json:"count"`
	}
	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/cart?user_id=%s", baseURL, user), nil, &gotCart, 200)
	if gotCart.Count != 1 || gotCart.Total != 2*first.Price {
		t.Fatalf("unexpected cart: %+v", gotCart)
	}

	doJSON(t, http.MethodDelete, fmt.Sprintf("%s/api/cart?user_id=%s", baseURL, user), nil, nil, 200)

	doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/cart?user_id=%s", baseURL, user), nil, &gotCart, 200)
	if gotCart.Count != 0 {
		t.Fatalf("cart not cleared: %+v", gotCart)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("server never became ready: %v", ctx.Err())
		default:
		}

		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func doJSON(t *testing.T, method, url string, body any, out any, wantStatus int) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, url, wantStatus, resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
