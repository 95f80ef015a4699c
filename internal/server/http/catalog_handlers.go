package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
)

// handleListItems serves the browse page: category/type/price/urgent
// filters plus title search, newest first.
func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := model.ItemFilter{
		Query:      q.Get("q"),
		UrgentOnly: q.Get("urgent") == "true",
	}
	// "all" means no constraint, matching the browse filter widget.
	if v := q.Get("category"); v != "" && v != "all" {
		f.Category = v
	}
	if v := q.Get("type"); v != "" && v != "all" {
		f.Type = model.ItemType(v)
	}
	var err error
	if f.MinPrice, err = parsePrice(q.Get("minPrice")); err != nil {
		writeError(w, err)
		return
	}
	if f.MaxPrice, err = parsePrice(q.Get("maxPrice")); err != nil {
		writeError(w, err)
		return
	}

	items, err := s.catalog.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func parsePrice(v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	p, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad price %q", errs.ErrValidation, v)
	}
	return &p, nil
}

// handleGetItem returns one listing.
func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, fmt.Errorf("%w: bad item id", errs.ErrValidation))
		return
	}
	it, err := s.catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// handleCreateItem publishes a new listing for the signed-in seller.
func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}

	var req struct {
		Title      string           `json:"title"`
		Price      *float64         `json:"price"`
		Type       model.ItemType   `json:"type"`
		Category   string           `json:"category"`
		Image      string           `json:"image"`
		Seller     model.SellerInfo `json:"seller"`
		IsUrgent   bool             `json:"isUrgent"`
		Negotiable bool             `json:"negotiable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", errs.ErrValidation))
		return
	}

	it, err := s.catalog.Create(r.Context(), sellerID, model.Item{
		Title:      req.Title,
		Price:      req.Price,
		Type:       req.Type,
		Category:   req.Category,
		Image:      req.Image,
		Seller:     req.Seller,
		IsUrgent:   req.IsUrgent,
		Negotiable: req.Negotiable,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, it)
}
