package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fadhlanhapp/tripdesk-backend/models"
)

// Store is the persistence boundary of the booking core. Reads are scoped to one
// owner; writes arrive as a unit of work applied all-or-nothing. Stores execute
// the writes they are given and never derive cascades of their own.
type Store interface {
	ListClients(ctx context.Context, ownerID string) ([]models.Client, error)
	ListTrips(ctx context.Context, ownerID string) ([]models.Trip, error)
	ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error)
	ApplyAtomic(ctx context.Context, ownerID string, unit models.UnitOfWork) error
	NewID(kind models.Collection) string
	Close() error
}

// snapshotter is implemented by stores that can read all three collections at once
type snapshotter interface {
	LoadEntitySet(ctx context.Context, ownerID string) (*models.EntitySet, error)
}

// LoadEntitySet reads the owner's clients, trips and payments
func LoadEntitySet(ctx context.Context, store Store, ownerID string) (*models.EntitySet, error) {
	if s, ok := store.(snapshotter); ok {
		return s.LoadEntitySet(ctx, ownerID)
	}

	clients, err := store.ListClients(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	trips, err := store.ListTrips(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := store.ListPayments(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return models.NewEntitySet(clients, trips, payments), nil
}

// newID issues a random identity; the kind is not encoded in it
func newID(models.Collection) string {
	return uuid.NewString()
}

// checkOwnership rejects units that write another owner's rows
func checkOwnership(ownerID string, unit models.UnitOfWork) error {
	if err := unit.Validate(); err != nil {
		return err
	}
	for i, op := range unit.Ops {
		if op.Kind != models.OpUpsert {
			continue
		}
		var owner string
		switch op.Collection {
		case models.CollectionClients:
			owner = op.Client.OwnerID
		case models.CollectionTrips:
			owner = op.Trip.OwnerID
		case models.CollectionPayments:
			owner = op.Payment.OwnerID
		}
		if owner != ownerID {
			return fmt.Errorf("operation %d: %s %s belongs to owner %q, not %q", i, op.Collection, op.ID, owner, ownerID)
		}
	}
	return nil
}
