package service

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/campusxchange/server/internal/errs"
	"github.com/campusxchange/server/internal/events"
	"github.com/campusxchange/server/internal/model"
	"github.com/campusxchange/server/internal/repository"
)

// CollectionService maintains a user's cart and wishlist. All mutating
// operations are idempotent; observers are notified only after the
// write has been persisted.
type CollectionService interface {
	List(ctx context.Context, userID string, kind model.CollectionKind) ([]model.Item, error)
	Add(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error
	Remove(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error
	Contains(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID string, kind model.CollectionKind) error
}

type CollectionServiceImpl struct {
	repo repository.CollectionRepository
	bus  events.Publisher
}

// NewCollectionService constructs CollectionService.
func NewCollectionService(repo repository.CollectionRepository, bus events.Publisher) *CollectionServiceImpl {
	return &CollectionServiceImpl{repo: repo, bus: bus}
}

func checkCollectionArgs(userID string, kind model.CollectionKind) error {
	if userID == "" {
		return fmt.Errorf("%w: empty user id", errs.ErrValidation)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown collection %q", errs.ErrValidation, kind)
	}
	return nil
}

func topicFor(kind model.CollectionKind) events.Topic {
	if kind == model.KindCart {
		return events.TopicCartChanged
	}
	return events.TopicWishlistChanged
}

// List returns current members in insertion order.
func (s *CollectionServiceImpl) List(ctx context.Context, userID string, kind model.CollectionKind) ([]model.Item, error) {
	if err := checkCollectionArgs(userID, kind); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID, kind)
}

// Add inserts the item if absent; duplicate adds leave exactly one entry.
func (s *CollectionServiceImpl) Add(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error {
	if err := checkCollectionArgs(userID, kind); err != nil {
		return err
	}
	if itemID == uuid.Nil {
		return fmt.Errorf("%w: empty item id", errs.ErrValidation)
	}
	if err := s.repo.Add(ctx, userID, kind, itemID); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Topic: topicFor(kind), UserID: userID})
	return nil
}

// Remove deletes the item if present; removing an absent id is a no-op.
func (s *CollectionServiceImpl) Remove(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) error {
	if err := checkCollectionArgs(userID, kind); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, userID, kind, itemID); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Topic: topicFor(kind), UserID: userID})
	return nil
}

// Contains reports membership.
func (s *CollectionServiceImpl) Contains(ctx context.Context, userID string, kind model.CollectionKind, itemID uuid.UUID) (bool, error) {
	if err := checkCollectionArgs(userID, kind); err != nil {
		return false, err
	}
	return s.repo.Contains(ctx, userID, kind, itemID)
}

// Clear empties the collection (checkout completion clears the cart).
func (s *CollectionServiceImpl) Clear(ctx context.Context, userID string, kind model.CollectionKind) error {
	if err := checkCollectionArgs(userID, kind); err != nil {
		return err
	}
	if err := s.repo.Clear(ctx, userID, kind); err != nil {
		return err
	}
	s.bus.Publish(events.Event{Topic: topicFor(kind), UserID: userID})
	return nil
}
