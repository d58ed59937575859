package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/models"
)

// MemoryStore keeps every owner's entities in process. A unit is applied to a
// copy which replaces the live set only when every write succeeded, so readers
// never observe a partial unit.
type MemoryStore struct {
	mu       sync.RWMutex
	sets     map[string]*models.EntitySet
	failNext error
	logger   *logrus.Logger
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(logger *logrus.Logger) *MemoryStore {
	return &MemoryStore{
		sets:   make(map[string]*models.EntitySet),
		logger: logger,
	}
}

// FailNextApply makes the next ApplyAtomic return err without writing anything
func (s *MemoryStore) FailNextApply(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

func (s *MemoryStore) current(ownerID string) *models.EntitySet {
	if set, ok := s.sets[ownerID]; ok {
		return set
	}
	return models.NewEntitySet(nil, nil, nil)
}

func (s *MemoryStore) LoadEntitySet(ctx context.Context, ownerID string) (*models.EntitySet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current(ownerID).Clone(), nil
}

func (s *MemoryStore) ListClients(ctx context.Context, ownerID string) ([]models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current(ownerID).ClientList(), nil
}

func (s *MemoryStore) ListTrips(ctx context.Context, ownerID string) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current(ownerID).TripList(), nil
}

func (s *MemoryStore) ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current(ownerID).PaymentList(), nil
}

// ApplyAtomic applies the unit or nothing
func (s *MemoryStore) ApplyAtomic(ctx context.Context, ownerID string, unit models.UnitOfWork) error {
	if err := checkOwnership(ownerID, unit); err != nil {
		return fmt.Errorf("invalid unit of work: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}

	next := s.current(ownerID).Apply(unit)
	if err := checkReferences(next); err != nil {
		return fmt.Errorf("unit of work rejected: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	s.sets[ownerID] = next

	s.logger.WithFields(logrus.Fields{
		"owner": ownerID,
		"ops":   len(unit.Ops),
	}).Debug("memory store applied unit of work")
	return nil
}

func (s *MemoryStore) NewID(kind models.Collection) string {
	return newID(kind)
}

func (s *MemoryStore) Close() error {
	return nil
}

// checkReferences plays the role of plain foreign keys: dangling references fail
// the unit instead of being repaired
func checkReferences(set *models.EntitySet) error {
	for _, client := range set.Clients {
		if client.TripID != nil {
			if _, ok := set.Trips[*client.TripID]; !ok {
				return fmt.Errorf("client %s references missing trip %s", client.ID, *client.TripID)
			}
		}
	}
	pairs := make(map[string]string)
	for _, payment := range set.Payments {
		if _, ok := set.Clients[payment.ClientID]; !ok {
			return fmt.Errorf("payment %s references missing client %s", payment.ID, payment.ClientID)
		}
		if payment.TripID == nil {
			continue
		}
		if _, ok := set.Trips[*payment.TripID]; !ok {
			return fmt.Errorf("payment %s references missing trip %s", payment.ID, *payment.TripID)
		}
		key := payment.ClientID + "/" + *payment.TripID
		if other, dup := pairs[key]; dup {
			return fmt.Errorf("%w: payments %s and %s", ErrDuplicateLink, other, payment.ID)
		}
		pairs[key] = payment.ID
	}
	return nil
}
