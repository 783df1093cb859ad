package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ShopKart/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

const (
	maxBodyBytes     = 1 << 20
	writeLimitPerMin = 30
)

// Register mounts the catalog routes onto r. Write endpoints share an
// IP rate limit.
func (s *Server) Register(r chi.Router) {
	writeLimiter := kit.NewIPRateLimiter(writeLimitPerMin, 60)

	r.Get("/products", s.list)
	r.Get("/products/{id}", s.get)
	r.With(writeLimiter.Middleware).Post("/products", s.create)
	r.With(writeLimiter.Middleware).Put("/products/{id}", s.update)
	r.With(writeLimiter.Middleware).Delete("/products/{id}", s.delete)

	r.Get("/search", s.search)
	r.Get("/categories", s.categories)
}

type productsResponse struct {
	Success  bool      `json:"success"`
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

type productResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Product Product `json:"product"`
}

type searchResponse struct {
	Success bool      `json:"success"`
	Query   string    `json:"query"`
	Count   int       `json:"count"`
	Results []Product `json:"results"`
}

type categoriesResponse struct {
	Success    bool     `json:"success"`
	Categories []string `json:"categories"`
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)

	products, err := s.Store.List(r.Context(), f)
	if err != nil {
		s.serverError(w, r, "list products failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, productsResponse{
		Success:  true,
		Count:    len(products),
		Products: products,
	})
}

// filterFromQuery mirrors the lenient query parsing of the public API:
// unparseable price bounds are treated as absent, not as errors.
func filterFromQuery(r *http.Request) Filter {
	q := r.URL.Query()

	f := Filter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil {
		f.MaxPrice = &v
	}
	return f
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "get product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	kit.WriteJSON(w, http.StatusOK, productResponse{Success: true, Product: p})
}

// createRequest uses pointers so that absent fields are distinguishable
// from zero values; required-field checks key on presence, as the API
// always has.
type createRequest struct {
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

func (req createRequest) product() Product {
	p := Product{
		Title:         *req.Title,
		Image:         DefaultImage,
		Price:         *req.Price,
		OriginalPrice: *req.OriginalPrice,
		Category:      *req.Category,
		InStock:       true,
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Rating != nil {
		p.Rating = *req.Rating
	}
	if req.RatingCount != nil {
		p.RatingCount = *req.RatingCount
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.InStock != nil {
		p.InStock = *req.InStock
	}
	if req.StockCount != nil {
		p.StockCount = *req.StockCount
	}
	return p
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Title == nil || req.Price == nil || req.OriginalPrice == nil || req.Category == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Missing required fields")
		return
	}

	p, err := s.Store.Create(r.Context(), req.product())
	if err != nil {
		s.serverError(w, r, "create product failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusCreated, productResponse{
		Success: true,
		Message: "Product created successfully",
		Product: p,
	})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	var patch Patch
	if err := decodeJSON(w, r, &patch); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	p, ok, err := s.Store.Update(r.Context(), id, patch)
	if err != nil {
		s.serverError(w, r, "update product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	kit.WriteJSON(w, http.StatusOK, productResponse{
		Success: true,
		Message: "Product updated successfully",
		Product: p,
	})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	ok, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "delete product failed", err)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "Product not found")
		return
	}

	kit.WriteJSON(w, http.StatusOK, kit.Envelope{
		Success: true,
		Message: "Product deleted successfully",
	})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))
	if query == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "Search query is required")
		return
	}

	results, err := s.Store.Search(r.Context(), query)
	if err != nil {
		s.serverError(w, r, "search failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, searchResponse{
		Success: true,
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.Store.Categories(r.Context())
	if err != nil {
		s.serverError(w, r, "list categories failed", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, categoriesResponse{
		Success:    true,
		Categories: categories,
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
