package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/tripdesk-backend/config"
	"github.com/fadhlanhapp/tripdesk-backend/models"
)

func openTestSQLite(t *testing.T) *SQLStore {
	t.Helper()
	logger, _ := test.NewNullLogger()
	cfg := &config.Config{SQLitePath: filepath.Join(t.TempDir(), "tripdesk.db")}
	store, err := OpenSQLStore(sqliteDialect, cfg.SQLiteDSN(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStore_RoundTrip(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.ApplyAtomic(ctx, owner, seedUnit()))

	set, err := store.LoadEntitySet(ctx, owner)
	require.NoError(t, err)

	trip := set.Trips["t1"]
	assert.Equal(t, "Bahia Week", trip.Name)
	assert.Equal(t, "2025-07-10", trip.DepartureDate.String())
	assert.Equal(t, 1000.0, trip.Price)
	assert.True(t, trip.CreatedAt.Equal(sampleTrip().CreatedAt))

	client := set.Clients["c1"]
	assert.Equal(t, "Ana Souza", client.FullName)
	assert.Equal(t, "1990-01-02", client.BirthDate.String())
	require.NotNil(t, client.TripID)
	assert.Equal(t, "t1", *client.TripID)
	assert.Empty(t, client.Email)

	payment := set.Payments["p1"]
	require.Len(t, payment.Installments, 2)
	assert.Equal(t, "i1", payment.Installments[0].ID)
	assert.Equal(t, 100.5, payment.Installments[1].Amount)
	assert.Equal(t, "sinal", payment.Installments[1].Note)
	assert.Equal(t, "2025-06-03", payment.Installments[1].Date.String())

	other, err := store.LoadEntitySet(ctx, "agency-2")
	require.NoError(t, err)
	assert.Empty(t, other.Clients)
}

func TestSQLStore_UpsertDetachAndAppend(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.ApplyAtomic(ctx, owner, seedUnit()))

	payment := samplePayment()
	payment.Installments = append(payment.Installments, models.Installment{
		ID: "i3", Amount: 499.5, Method: "card", Date: models.NewDate(2025, 6, 4),
	})
	payment.TripID = nil
	client := sampleClient()
	client.TripID = nil
	client.Status = "paid"

	var unit models.UnitOfWork
	unit.UpsertPayment(payment)
	unit.UpsertClient(client)
	unit.Delete(models.CollectionTrips, "t1")
	require.NoError(t, store.ApplyAtomic(ctx, owner, unit))

	payments, err := store.ListPayments(ctx, owner)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Nil(t, payments[0].TripID)
	assert.Len(t, payments[0].Installments, 3)
	assert.Equal(t, "i3", payments[0].Installments[2].ID)

	clients, err := store.ListClients(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, clients[0].TripID)
	assert.Equal(t, "paid", clients[0].Status)

	trips, err := store.ListTrips(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestSQLStore_ForeignKeyFailureRollsBackWholeUnit(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.ApplyAtomic(ctx, owner, seedUnit()))

	client := sampleClient()
	client.Status = "paid"
	var unit models.UnitOfWork
	unit.UpsertClient(client)
	// the payment and client still reference the trip
	unit.Delete(models.CollectionTrips, "t1")

	require.Error(t, store.ApplyAtomic(ctx, owner, unit))

	clients, err := store.ListClients(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "pending", clients[0].Status)
	trips, err := store.ListTrips(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, trips, 1)
}

func TestSQLStore_DuplicateLink(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.ApplyAtomic(ctx, owner, seedUnit()))

	duplicate := samplePayment()
	duplicate.ID = "p2"
	duplicate.Installments = nil
	var unit models.UnitOfWork
	unit.UpsertPayment(duplicate)

	assert.ErrorIs(t, store.ApplyAtomic(ctx, owner, unit), ErrDuplicateLink)
}

func TestSQLStore_DeletePaymentRemovesInstallments(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.ApplyAtomic(ctx, owner, seedUnit()))

	var unit models.UnitOfWork
	unit.Delete(models.CollectionPayments, "p1")
	unit.Delete(models.CollectionClients, "c1")
	require.NoError(t, store.ApplyAtomic(ctx, owner, unit))

	var count int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM installments").Scan(&count))
	assert.Zero(t, count)
}

func TestSQLStore_IDsCannotCrossOwners(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()
	require.NoError(t, store.ApplyAtomic(ctx, owner, seedUnit()))

	stolen := sampleTrip()
	stolen.OwnerID = "agency-2"
	stolen.Name = "Hijacked"
	var unit models.UnitOfWork
	unit.UpsertTrip(stolen)

	assert.Error(t, store.ApplyAtomic(ctx, "agency-2", unit))
	trips, err := store.ListTrips(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Bahia Week", trips[0].Name)
}

func TestDialectRebind(t *testing.T) {
	query := "SELECT * FROM trips WHERE id = ? AND owner_id = ?"
	assert.Equal(t, query, sqliteDialect.rebind(query))
	assert.Equal(t, "SELECT * FROM trips WHERE id = $1 AND owner_id = $2", postgresDialect.rebind(query))
}

func TestNewStore_Memory(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store, err := NewStore(&config.Config{StoreDriver: config.DriverMemory}, logger)
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	_, err = NewStore(&config.Config{StoreDriver: "oracle"}, logger)
	assert.Error(t, err)
}
