package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopKart/internal/catalog"
	"ShopKart/internal/identity"
	"ShopKart/pkg/kit"
)

type Server struct {
	Store   Store
	Catalog catalog.Store
	Log     *zap.Logger

	// DefaultUserID is the cart owner for requests carrying no identity.
	// All anonymous clients share it.
	DefaultUserID string
}

const maxBodyBytes = 1 << 20

func (s *Server) Register(r chi.Router) {
	r.Get("/cart", s.get)
	r.Post("/cart", s.add)
	r.Delete("/cart", s.clear)
	r.Put("/cart/update", s.update)
	r.Delete("/cart/{productId}", s.remove)
}

// enrichedLine joins a stored line with the live product record. Prices
// are read at response time, so a product edit retroactively changes the
// displayed cart value.
type enrichedLine struct {
	Line
	Product catalog.Product `json:"product"`
}

type cartResponse struct {
	Success bool           `json:"success"`
	Cart    []enrichedLine `json:"cart"`
	Total   int64          `json:"total"`
	Count   int            `json:"count"`
}

type linesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Cart    []Line `json:"cart"`
}

// userID resolves the cart owner: verified token identity first, then an
// explicit user_id from the body or query, then the configured default.
func (s *Server) userID(r *http.Request, fromBody string) string {
	if id, ok := identity.UserFromContext(r.Context()); ok {
		return id
	}
	if fromBody != "" {
		return fromBody
	}
	if id := r.URL.Query().Get("user_id"); id != "" {
		return id
	}
	return s.DefaultUserID
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r, "")

	lines, err := s.Store.Lines(r.Context(), userID)
	if err != nil {
		s.serverError(w, r, "load cart failed", err)
		return
	}

	enriched := make([]enrichedLine, 0, len(lines))
	var total int64
	for _, l := range lines {
		p, ok, err := s.Catalog.Get(r.Context(), l.ProductID)
		if err != nil {
			s.serverError(w, r, "enrich cart failed", err)
			return
		}
		if !ok {
			// The product was deleted after it was added; the stored
			// line survives but is invisible to the client.
			continue
		}
		enriched = append(enriched, enrichedLine{Line: l, Product: p})
		total += p.Price * int64(l.Quantity)
	}

	kit.WriteJSON(w, http.StatusOK, cartResponse{
		Success: true,
		Cart:    enriched,
		Total:   total,
		Count:   len(enriched),
	})
}

type addRequest struct {
	UserID    string `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ProductID == 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id is required")
		return
	}

	_, ok, err := s.Catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		s.serverError(w, r, "resolve product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	userID := s.userID(r, req.UserID)
	lines, err := s.Store.Add(r.Context(), userID, req.ProductID, qty, time.Now().UTC())
	if err != nil {
		s.serverError(w, r, "add to cart failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, linesResponse{
		Success: true,
		Message: "Item added to cart",
		Cart:    lines,
	})
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Item not found in cart")
		return
	}

	userID := s.userID(r, "")
	lines, err := s.Store.Remove(r.Context(), userID, productID)
	if errors.Is(err, ErrCartNotFound) {
		kit.WriteError(w, r, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		s.serverError(w, r, "remove from cart failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, linesResponse{
		Success: true,
		Message: "Item removed from cart",
		Cart:    lines,
	})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	userID := s.userID(r, "")

	if err := s.Store.Clear(r.Context(), userID); err != nil {
		s.serverError(w, r, "clear cart failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, kit.Envelope{
		Success: true,
		Message: "Cart cleared",
	})
}

type updateRequest struct {
	UserID    string `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.ProductID == 0 || req.Quantity == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id and quantity are required")
		return
	}

	userID := s.userID(r, req.UserID)
	lines, err := s.Store.SetQuantity(r.Context(), userID, req.ProductID, *req.Quantity)
	switch {
	case errors.Is(err, ErrCartNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Cart not found")
		return
	case errors.Is(err, ErrItemNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "Item not found in cart")
		return
	case err != nil:
		s.serverError(w, r, "update cart failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, linesResponse{
		Success: true,
		Message: "Cart updated",
		Cart:    lines,
	})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if s.Log != nil {
		s.Log.Error(msg, zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(dst)
}
