package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid/v5"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/model"
)

// handleCreateRequest is the "contact seller" flow for a single item.
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID     uuid.UUID `json:"itemId"`
		ItemTitle  string    `json:"itemTitle"`
		ItemPrice  *float64  `json:"itemPrice"`
		ItemImage  string    `json:"itemImage"`
		SellerID   string    `json:"sellerId"`
		SellerName string    `json:"sellerName"`
		BuyerName  string    `json:"buyerName"`
		BuyerEmail string    `json:"buyerEmail"`
		BuyerPhone string    `json:"buyerPhone"`
		Message    string    `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", errs.ErrValidation))
		return
	}

	cr, err := s.requests.Create(r.Context(), model.NewContactRequest{
		ItemID:     req.ItemID,
		ItemTitle:  req.ItemTitle,
		ItemPrice:  req.ItemPrice,
		ItemImage:  req.ItemImage,
		SellerID:   req.SellerID,
		SellerName: req.SellerName,
		BuyerID:    CurrentUserID(r.Context()),
		BuyerName:  req.BuyerName,
		BuyerEmail: req.BuyerEmail,
		BuyerPhone: req.BuyerPhone,
		Message:    req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cr)
}

// handleCheckout turns the whole cart into contact requests. Requires a
// real session: anonymous carts can't be negotiated.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: bad request body", errs.ErrValidation))
		return
	}

	created, err := s.requests.Checkout(r.Context(), buyerID, model.BuyerContact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handlePendingRequests(w http.ResponseWriter, r *http.Request) {
	s.listRequests(w, r, s.requests.PendingForBuyer)
}

func (s *Server) handleAcceptedRequests(w http.ResponseWriter, r *http.Request) {
	s.listRequests(w, r, s.requests.AcceptedForBuyer)
}

func (s *Server) handleReceivedRequests(w http.ResponseWriter, r *http.Request) {
	s.listRequests(w, r, s.requests.PendingForSeller)
}

func (s *Server) listRequests(
	w http.ResponseWriter, r *http.Request,
	query func(ctx context.Context, actorID string) ([]model.ContactRequest, error),
) {
	out, err := query(r.Context(), CurrentUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []model.ContactRequest{}
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAccept lets the seller reveal their contact details.
func (s *Server) handleAccept(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, s.requests.Accept)
}

// handleReject declines the request; terminal, no reversal path.
func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	s.decide(w, r, s.requests.Reject)
}

func (s *Server) decide(
	w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, sellerID, requestID string) error,
) {
	sellerID, ok := UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, errs.ErrUnauthorized)
		return
	}
	if err := op(r.Context(), sellerID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
