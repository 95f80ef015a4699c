package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/events"
	"github.com/campusxchange/server/internal/model"
	"github.com/campusxchange/server/internal/repository"
)

var (
	requestsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campusx_contact_requests_created_total",
		Help: "Contact requests appended to the ledger.",
	})
	requestsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campusx_contact_requests_accepted_total",
		Help: "Contact requests accepted by sellers.",
	})
	requestsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campusx_contact_requests_rejected_total",
		Help: "Contact requests rejected by sellers.",
	})
)

// SellerDirectory resolves a seller's account email, "" when unknown.
// The ledger stores it at append time; queries withhold it until the
// request is accepted.
type SellerDirectory interface {
	SellerEmail(ctx context.Context, sellerID string) string
}

// RequestService is the contact-request ledger: create, role-scoped
// queries, and the pending → accepted/rejected transitions.
type RequestService interface {
	// Create validates input and appends a pending record.
	Create(ctx context.Context, in model.NewContactRequest) (*model.ContactRequest, error)
	// Checkout appends one request per cart item, then clears the cart.
	Checkout(ctx context.Context, buyerID string, contact model.BuyerContact) ([]model.ContactRequest, error)
	// PendingForBuyer lists the buyer's requests still awaiting a decision.
	PendingForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error)
	// AcceptedForBuyer lists accepted requests with seller email revealed.
	AcceptedForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error)
	// PendingForSeller lists requests awaiting this seller's decision.
	PendingForSeller(ctx context.Context, sellerID string) ([]model.ContactRequest, error)
	// Accept moves pending → accepted. Terminal records are no-ops.
	Accept(ctx context.Context, sellerID, requestID string) error
	// Reject moves pending → rejected. Terminal records are no-ops.
	Reject(ctx context.Context, sellerID, requestID string) error
}

type RequestServiceImpl struct {
	repo    repository.RequestRepository
	carts   CollectionService
	sellers SellerDirectory
	bus     events.Publisher

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewRequestService constructs RequestService.
func NewRequestService(
	repo repository.RequestRepository,
	carts CollectionService,
	sellers SellerDirectory,
	bus events.Publisher,
) *RequestServiceImpl {
	return &RequestServiceImpl{
		repo:    repo,
		carts:   carts,
		sellers: sellers,
		bus:     bus,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
}

// DefaultMessage is the templated message used when the buyer leaves
// the message field empty.
func DefaultMessage(itemTitle string) string {
	return fmt.Sprintf("Hi! I'm interested in %q. Is it still available?", itemTitle)
}

// newID returns a time-ordered, collision-free request id.
func (s *RequestServiceImpl) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

// Create validates the buyer's contact fields and appends a pending record.
func (s *RequestServiceImpl) Create(ctx context.Context, in model.NewContactRequest) (*model.ContactRequest, error) {
	if err := validateNewRequest(in); err != nil {
		return nil, err
	}

	cr := &model.ContactRequest{
		ID:          s.newID(),
		ItemID:      in.ItemID,
		ItemTitle:   in.ItemTitle,
		ItemPrice:   in.ItemPrice,
		ItemImage:   in.ItemImage,
		SellerID:    in.SellerID,
		SellerName:  in.SellerName,
		SellerEmail: s.sellers.SellerEmail(ctx, in.SellerID),
		BuyerID:     in.BuyerID,
		BuyerName:   in.BuyerName,
		BuyerEmail:  in.BuyerEmail,
		BuyerPhone:  in.BuyerPhone,
		Message:     in.Message,
		Status:      model.StatusPending,
		CreatedAt:   time.Now(),
	}
	if cr.Message == "" {
		cr.Message = DefaultMessage(cr.ItemTitle)
	}
	if cr.SellerName == "" {
		cr.SellerName = "Unknown Seller"
	}

	if err := s.repo.Append(ctx, cr); err != nil {
		return nil, err
	}
	requestsCreated.Inc()
	s.notifyRequestChange(cr.BuyerID, cr.SellerID)
	return cr, nil
}

func validateNewRequest(in model.NewContactRequest) error {
	switch {
	case in.ItemTitle == "":
		return fmt.Errorf("%w: item title is required", errs.ErrValidation)
	case in.SellerID == "":
		return fmt.Errorf("%w: seller id is required", errs.ErrValidation)
	case in.BuyerID == "":
		return fmt.Errorf("%w: buyer id is required", errs.ErrValidation)
	case in.BuyerName == "":
		return fmt.Errorf("%w: buyer name is required", errs.ErrValidation)
	case in.BuyerEmail == "" || strings.EqualFold(in.BuyerEmail, "null"):
		return fmt.Errorf("%w: a valid buyer email is required", errs.ErrValidation)
	case in.BuyerPhone == "":
		return fmt.Errorf("%w: buyer phone is required", errs.ErrValidation)
	case in.BuyerID == in.SellerID:
		return errs.ErrSelfRequest
	}
	return nil
}

// Checkout appends one pending request per cart item using the buyer's
// contact form, then clears the cart. An empty cart is a validation error.
func (s *RequestServiceImpl) Checkout(ctx context.Context, buyerID string, contact model.BuyerContact) ([]model.ContactRequest, error) {
	items, err := s.carts.List(ctx, buyerID, model.KindCart)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", errs.ErrValidation)
	}

	out := make([]model.ContactRequest, 0, len(items))
	for _, it := range items {
		cr, err := s.Create(ctx, model.NewContactRequest{
			ItemID:     it.ID,
			ItemTitle:  it.Title,
			ItemPrice:  it.Price,
			ItemImage:  it.Image,
			SellerID:   it.SellerID,
			SellerName: it.Seller.Name,
			BuyerID:    buyerID,
			BuyerName:  contact.Name,
			BuyerEmail: contact.Email,
			BuyerPhone: contact.Phone,
			Message:    contact.Message, // per-item default applied when empty
		})
		if err != nil {
			return nil, err
		}
		out = append(out, *cr)
	}

	if err := s.carts.Clear(ctx, buyerID, model.KindCart); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingForBuyer lists the buyer's pending requests, seller email withheld.
func (s *RequestServiceImpl) PendingForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("%w: empty buyer id", errs.ErrValidation)
	}
	return s.repo.PendingForBuyer(ctx, buyerID)
}

// AcceptedForBuyer lists accepted requests; the projection includes the
// seller's email.
func (s *RequestServiceImpl) AcceptedForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error) {
	if buyerID == "" {
		return nil, fmt.Errorf("%w: empty buyer id", errs.ErrValidation)
	}
	return s.repo.AcceptedForBuyer(ctx, buyerID)
}

// PendingForSeller lists requests awaiting this seller's decision.
func (s *RequestServiceImpl) PendingForSeller(ctx context.Context, sellerID string) ([]model.ContactRequest, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: empty seller id", errs.ErrValidation)
	}
	return s.repo.PendingForSeller(ctx, sellerID)
}

// Accept transitions pending → accepted.
func (s *RequestServiceImpl) Accept(ctx context.Context, sellerID, requestID string) error {
	return s.transition(ctx, sellerID, requestID, model.StatusAccepted, requestsAccepted)
}

// Reject transitions pending → rejected.
func (s *RequestServiceImpl) Reject(ctx context.Context, sellerID, requestID string) error {
	return s.transition(ctx, sellerID, requestID, model.StatusRejected, requestsRejected)
}

// transition applies the status-guarded CAS. Only the request's seller
// may decide it. A record already in the target state is an idempotent
// no-op; any other terminal record is left untouched; an unknown id is
// reported as not found.
func (s *RequestServiceImpl) transition(ctx context.Context, sellerID, requestID string, to model.RequestStatus, counter prometheus.Counter) error {
	if requestID == "" {
		return fmt.Errorf("%w: empty request id", errs.ErrValidation)
	}

	cur, err := s.repo.Get(ctx, requestID)
	if err != nil {
		return err // ErrNotFound for unknown ids
	}
	if sellerID != "" && cur.SellerID != sellerID {
		return errs.ErrUnauthorized
	}
	if cur.Status != model.StatusPending {
		return nil // terminal, keep the operation idempotent under retry
	}

	moved, err := s.repo.Transition(ctx, requestID, model.StatusPending, to)
	if err != nil {
		return err
	}
	if !moved {
		// lost the race to another decision; terminal now, still a no-op
		return nil
	}
	counter.Inc()
	s.notifyRequestChange(cur.BuyerID, cur.SellerID)
	return nil
}

// notifyRequestChange refreshes both parties' views.
func (s *RequestServiceImpl) notifyRequestChange(buyerID, sellerID string) {
	s.bus.Publish(events.Event{Topic: events.TopicRequestsChanged, UserID: buyerID})
	if sellerID != buyerID {
		s.bus.Publish(events.Event{Topic: events.TopicRequestsChanged, UserID: sellerID})
	}
}
