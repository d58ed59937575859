package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/repository"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// BookingService runs every mutation of the booking core. Writes for one owner
// are serialised: the entity set is loaded, planned by the engine and applied
// as one unit while the owner's lock is held.
type BookingService struct {
	store  repository.Store
	engine *Engine
	locks  *KeyedMutex
	logger *logrus.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(store repository.Store, logger *logrus.Logger) *BookingService {
	return &BookingService{
		store:  store,
		engine: NewEngine(store),
		locks:  NewKeyedMutex(),
		logger: logger,
	}
}

// WithEngine swaps the engine, used by tests that pin the clock
func (s *BookingService) WithEngine(engine *Engine) *BookingService {
	s.engine = engine
	return s
}

type plan func(set *models.EntitySet) (*Outcome, error)

// mutate loads, plans and applies under the owner's lock. A failed apply leaves
// the store unchanged and surfaces as a persistence failure.
func (s *BookingService) mutate(ctx context.Context, ownerID, operation string, planner plan) (*Outcome, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, utils.NewBadRequestError(utils.ErrMissingOwner)
	}

	unlock := s.locks.Lock(ownerID)
	defer unlock()

	set, err := repository.LoadEntitySet(ctx, s.store, ownerID)
	if err != nil {
		s.logger.WithError(err).WithField("owner", ownerID).Error("Failed to load entities")
		return nil, utils.NewPersistenceError(err)
	}

	outcome, err := planner(set)
	if err != nil {
		return nil, err
	}
	if outcome.NoOp || outcome.Unit.Empty() {
		return outcome, nil
	}

	if err := s.store.ApplyAtomic(ctx, ownerID, outcome.Unit); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"owner":     ownerID,
			"operation": operation,
			"ops":       len(outcome.Unit.Ops),
		}).Error("Failed to apply unit of work")
		if errors.Is(err, repository.ErrDuplicateLink) {
			return nil, utils.NewValidationError(err.Error())
		}
		return nil, utils.NewPersistenceError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"owner":     ownerID,
		"operation": operation,
		"ops":       len(outcome.Unit.Ops),
	}).Info("Booking change applied")
	return outcome, nil
}

// CreateClient stores a new client and links a ledger when a trip is given
func (s *BookingService) CreateClient(ctx context.Context, ownerID string, request *models.CreateClientRequest) (*models.ClientResponse, error) {
	outcome, err := s.mutate(ctx, ownerID, "createClient", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.CreateClient(set, ownerID, request)
	})
	if err != nil {
		return nil, err
	}
	return clientResponse(outcome), nil
}

// UpdateClient applies a partial update to a client
func (s *BookingService) UpdateClient(ctx context.Context, ownerID, clientID string, patch *models.UpdateClientRequest) (*models.ClientResponse, error) {
	outcome, err := s.mutate(ctx, ownerID, "updateClient", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.UpdateClient(set, clientID, patch)
	})
	if err != nil {
		return nil, err
	}
	return clientResponse(outcome), nil
}

// DeleteClient removes a client and its ledgers
func (s *BookingService) DeleteClient(ctx context.Context, ownerID, clientID string) error {
	_, err := s.mutate(ctx, ownerID, "deleteClient", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.DeleteClient(set, clientID)
	})
	return err
}

// ToggleClientStatus flips a client between paid and pending
func (s *BookingService) ToggleClientStatus(ctx context.Context, ownerID, clientID string) (*models.Client, error) {
	outcome, err := s.mutate(ctx, ownerID, "toggleClientStatus", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.ToggleClientStatus(set, clientID)
	})
	if err != nil {
		return nil, err
	}
	return outcome.Client, nil
}

// CreateTrip stores a new trip
func (s *BookingService) CreateTrip(ctx context.Context, ownerID string, request *models.CreateTripRequest) (*models.Trip, error) {
	outcome, err := s.mutate(ctx, ownerID, "createTrip", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.CreateTrip(set, ownerID, request)
	})
	if err != nil {
		return nil, err
	}
	return outcome.Trip, nil
}

// UpdateTrip applies a partial update to a trip
func (s *BookingService) UpdateTrip(ctx context.Context, ownerID, tripID string, patch *models.UpdateTripRequest) (*models.Trip, error) {
	outcome, err := s.mutate(ctx, ownerID, "updateTrip", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.UpdateTrip(set, tripID, patch)
	})
	if err != nil {
		return nil, err
	}
	return outcome.Trip, nil
}

// DeleteTrip removes a trip, keeping ledgers that hold money
func (s *BookingService) DeleteTrip(ctx context.Context, ownerID, tripID string) error {
	_, err := s.mutate(ctx, ownerID, "deleteTrip", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.DeleteTrip(set, tripID)
	})
	return err
}

// EnsurePayment returns the ledger of a (client, trip) pair, creating it if needed
func (s *BookingService) EnsurePayment(ctx context.Context, ownerID string, request *models.EnsurePaymentRequest) (*models.EnsurePaymentResponse, error) {
	outcome, err := s.mutate(ctx, ownerID, "ensurePayment", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.EnsurePayment(set, request.ClientID, request.TripID)
	})
	if err != nil {
		return nil, err
	}
	return &models.EnsurePaymentResponse{Payment: outcome.Payment, Created: outcome.Created}, nil
}

// RegisterPayment records an installment against a ledger
func (s *BookingService) RegisterPayment(ctx context.Context, ownerID, paymentID string, request *models.InstallmentRequest) (*models.RegisterInstallmentResponse, error) {
	outcome, err := s.mutate(ctx, ownerID, "registerPayment", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.RegisterPayment(set, paymentID, request)
	})
	if err != nil {
		return nil, err
	}

	response := &models.RegisterInstallmentResponse{
		Payment:     paymentView(outcome.State, *outcome.Payment),
		Installment: *outcome.Installment,
	}
	if outcome.Client != nil {
		response.ClientStatus = outcome.Client.Status
	}
	return response, nil
}

// DeletePayment removes a ledger and its installment history
func (s *BookingService) DeletePayment(ctx context.Context, ownerID, paymentID string) error {
	_, err := s.mutate(ctx, ownerID, "deletePayment", func(set *models.EntitySet) (*Outcome, error) {
		return s.engine.DeletePayment(set, paymentID)
	})
	return err
}

func clientResponse(outcome *Outcome) *models.ClientResponse {
	return &models.ClientResponse{
		Client:         outcome.Client,
		Payment:        outcome.Payment,
		PaymentCreated: outcome.Created,
	}
}
