package repository

import (
	"context"

	"github.com/campusxchange/server/internal/model"
)

// RequestRepository is the append-and-transition store for contact
// requests. Records are never mutated except for the status column,
// which only moves through the guarded Transition.
type RequestRepository interface {
	// Append inserts a new pending record.
	Append(ctx context.Context, r *model.ContactRequest) error

	// Get returns a record by id (all columns, no projection).
	Get(ctx context.Context, id string) (*model.ContactRequest, error)

	// PendingForBuyer returns the buyer's pending requests; the seller's
	// email is withheld from the projection.
	PendingForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error)

	// AcceptedForBuyer returns the buyer's accepted requests with the
	// seller's email included.
	AcceptedForBuyer(ctx context.Context, buyerID string) ([]model.ContactRequest, error)

	// PendingForSeller returns requests awaiting this seller's decision,
	// seller email withheld.
	PendingForSeller(ctx context.Context, sellerID string) ([]model.ContactRequest, error)

	// Transition moves a record from one status to another with a
	// status-guarded compare-and-swap. It reports whether a row actually
	// moved; a stale or terminal record yields (false, nil).
	Transition(ctx context.Context, id string, from, to model.RequestStatus) (bool, error)
}
