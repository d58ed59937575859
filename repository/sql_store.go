package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/models"
)

// ErrDuplicateLink is returned when a unit would create a second payment for
// the same client and trip
var ErrDuplicateLink = errors.New("payment already exists for this client and trip")

// SQLStore persists entities in postgres or sqlite. Every unit of work runs in
// one transaction.
type SQLStore struct {
	db       *sql.DB
	dialect  dialect
	logger   *logrus.Logger
	clients  ClientRepository
	trips    TripRepository
	payments PaymentRepository
}

// OpenSQLStore connects, creates missing tables and returns the store
func OpenSQLStore(d dialect, dsn string, logger *logrus.Logger) (*SQLStore, error) {
	db, err := openDB(d, dsn, logger)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(d.schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return newSQLStore(db, d, logger), nil
}

func newSQLStore(db *sql.DB, d dialect, logger *logrus.Logger) *SQLStore {
	return &SQLStore{
		db:       db,
		dialect:  d,
		logger:   logger,
		clients:  ClientRepository{dialect: d},
		trips:    TripRepository{dialect: d},
		payments: PaymentRepository{dialect: d},
	}
}

func (s *SQLStore) ListClients(ctx context.Context, ownerID string) ([]models.Client, error) {
	return s.clients.ListClients(ctx, s.db, ownerID)
}

func (s *SQLStore) ListTrips(ctx context.Context, ownerID string) ([]models.Trip, error) {
	return s.trips.ListTrips(ctx, s.db, ownerID)
}

func (s *SQLStore) ListPayments(ctx context.Context, ownerID string) ([]models.Payment, error) {
	return s.payments.ListPayments(ctx, s.db, ownerID)
}

// LoadEntitySet reads the three collections inside one read-only transaction
func (s *SQLStore) LoadEntitySet(ctx context.Context, ownerID string) (*models.EntitySet, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: s.dialect.driver == postgresDialect.driver})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	clients, err := s.clients.ListClients(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}
	trips, err := s.trips.ListTrips(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListPayments(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit read: %w", err)
	}
	return models.NewEntitySet(clients, trips, payments), nil
}

// ApplyAtomic executes the unit in order inside one transaction
func (s *SQLStore) ApplyAtomic(ctx context.Context, ownerID string, unit models.UnitOfWork) error {
	if err := checkOwnership(ownerID, unit); err != nil {
		return fmt.Errorf("invalid unit of work: %w", err)
	}
	if unit.Empty() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range unit.Ops {
		if err := s.apply(ctx, tx, ownerID, &unit.Ops[i]); err != nil {
			return translateError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	s.logger.WithFields(logrus.Fields{
		"owner":  ownerID,
		"ops":    len(unit.Ops),
		"driver": s.dialect.driver,
	}).Debug("sql store applied unit of work")
	return nil
}

func (s *SQLStore) apply(ctx context.Context, tx *sql.Tx, ownerID string, op *models.Operation) error {
	switch op.Collection {
	case models.CollectionClients:
		if op.Kind == models.OpDelete {
			return s.clients.DeleteClient(ctx, tx, ownerID, op.ID)
		}
		return s.clients.UpsertClient(ctx, tx, op.Client)
	case models.CollectionTrips:
		if op.Kind == models.OpDelete {
			return s.trips.DeleteTrip(ctx, tx, ownerID, op.ID)
		}
		return s.trips.UpsertTrip(ctx, tx, op.Trip)
	case models.CollectionPayments:
		if op.Kind == models.OpDelete {
			return s.payments.DeletePayment(ctx, tx, ownerID, op.ID)
		}
		return s.payments.UpsertPayment(ctx, tx, op.Payment)
	}
	return fmt.Errorf("unknown collection %q", op.Collection)
}

func (s *SQLStore) NewID(kind models.Collection) string {
	return newID(kind)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// translateError maps unique violations on the (client, trip) index to
// ErrDuplicateLink and leaves everything else wrapped as is
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicateLink, pqErr.Message)
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %s", ErrDuplicateLink, liteErr.Error())
	}
	return err
}
