package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

func TestMatchesClient(t *testing.T) {
	client := &models.Client{
		FullName:   "Ana Souza",
		Email:      "ana@example.com",
		NationalID: "52998224725",
		Phone:      "11987654321",
	}

	tests := []struct {
		query string
		match bool
	}{
		{"souza", true},
		{"EXAMPLE", true},
		{"529.982", true},
		{"98765-4321", true},
		{"bruno", false},
		{"000", false},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.match, MatchesClient(client, tt.query))
		})
	}
}

func TestQueryService_SearchAndTripClients(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	trip, _ := f.tripWithClient(t)
	_, err := f.bookings.CreateClient(ctx, testOwner, clientRequest("Bruno Lima", "11144477735", ""))
	require.NoError(t, err)

	found, err := f.queries.ListClients(ctx, testOwner, "lima")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Bruno Lima", found[0].FullName)

	booked, err := f.queries.ClientsOfTrip(ctx, testOwner, trip.ID)
	require.NoError(t, err)
	require.Len(t, booked, 1)
	assert.Equal(t, "Ana Souza", booked[0].FullName)

	_, err = f.queries.ClientsOfTrip(ctx, testOwner, "nope")
	assert.True(t, utils.IsKind(err, utils.KindEntityNotFound))

	_, err = f.queries.ListTrips(ctx, "")
	assert.True(t, utils.IsKind(err, utils.KindBadRequest))
}

func TestQueryService_Dashboard(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	trip, created := f.tripWithClient(t)
	second, err := f.bookings.CreateClient(ctx, testOwner, clientRequest("Bruno Lima", "11144477735", trip.ID))
	require.NoError(t, err)
	_, err = f.bookings.CreateTrip(ctx, testOwner, &models.CreateTripRequest{
		Name:          "Serra Gaúcha",
		Destination:   "Gramado",
		DepartureDate: models.NewDate(2025, time.August, 1),
		ReturnDate:    models.NewDate(2025, time.August, 5),
		Price:         2000,
		Status:        utils.TripStatusFinished,
	})
	require.NoError(t, err)

	for _, step := range []struct {
		paymentID string
		amount    float64
	}{
		{created.Payment.ID, 1000},
		{second.Payment.ID, 250.5},
	} {
		_, err := f.bookings.RegisterPayment(ctx, testOwner, step.paymentID, &models.InstallmentRequest{
			Amount: step.amount, Method: utils.MethodPix, Date: models.NewDate(2025, time.June, 5),
		})
		require.NoError(t, err)
	}

	summary, err := f.queries.Dashboard(ctx, testOwner)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ActiveTrips)
	assert.Equal(t, 2, summary.TotalClients)
	assert.Equal(t, 1, summary.PaidClients)
	assert.Equal(t, 1, summary.PendingClients)
	assert.Equal(t, 2000.0, summary.TotalReceivable)
	assert.Equal(t, 1250.5, summary.TotalReceived)
	assert.Equal(t, 749.5, summary.TotalPending)
	require.Len(t, summary.Trips, 2)
	assert.Equal(t, models.TripProgress{
		TripID:   trip.ID,
		Name:     "Bahia Week",
		Status:   utils.TripStatusActive,
		Clients:  2,
		Received: 1250.5,
		Expected: 2000,
	}, summary.Trips[0])
	assert.Equal(t, 0, summary.Trips[1].Clients)
}
