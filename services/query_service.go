package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/repository"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// QueryService answers read-only questions over an owner's bookings
type QueryService struct {
	store  repository.Store
	logger *logrus.Logger
}

// NewQueryService creates a new query service
func NewQueryService(store repository.Store, logger *logrus.Logger) *QueryService {
	return &QueryService{store: store, logger: logger}
}

func (s *QueryService) load(ctx context.Context, ownerID string) (*models.EntitySet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, utils.NewBadRequestError(utils.ErrMissingOwner)
	}
	set, err := repository.LoadEntitySet(ctx, s.store, ownerID)
	if err != nil {
		s.logger.WithError(err).WithField("owner", ownerID).Error("Failed to load entities")
		return nil, utils.NewPersistenceError(err)
	}
	return set, nil
}

// Snapshot returns every entity of the owner
func (s *QueryService) Snapshot(ctx context.Context, ownerID string) (*models.EntitySet, error) {
	return s.load(ctx, ownerID)
}

// ListClients returns the owner's clients, filtered by a quick search query when
// one is given
func (s *QueryService) ListClients(ctx context.Context, ownerID, query string) ([]models.Client, error) {
	set, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	clients := set.ClientList()
	if strings.TrimSpace(query) == "" {
		return clients, nil
	}

	matches := []models.Client{}
	for _, client := range clients {
		if MatchesClient(&client, query) {
			matches = append(matches, client)
		}
	}
	return matches, nil
}

// MatchesClient does a case-insensitive match on name and email and a digit
// match on CPF and phone, so masked and unmasked queries both hit
func MatchesClient(client *models.Client, query string) bool {
	text := utils.NormalizeSearch(query)
	if text == "" {
		return true
	}
	if strings.Contains(strings.ToLower(client.FullName), text) ||
		strings.Contains(strings.ToLower(client.Email), text) {
		return true
	}
	digits := utils.OnlyDigits(query)
	if digits == "" {
		return false
	}
	return strings.Contains(client.NationalID, digits) || strings.Contains(client.Phone, digits)
}

// ListTrips returns the owner's trips by departure date
func (s *QueryService) ListTrips(ctx context.Context, ownerID string) ([]models.Trip, error) {
	set, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return set.TripList(), nil
}

// ClientsOfTrip lists the clients currently booked on a trip
func (s *QueryService) ClientsOfTrip(ctx context.Context, ownerID, tripID string) ([]models.Client, error) {
	set, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if _, ok := set.Trips[tripID]; !ok {
		return nil, utils.NewNotFoundError("Trip")
	}
	clients := set.ClientsOfTrip(tripID)
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

// ListPayments returns every ledger with its derived figures and display names
func (s *QueryService) ListPayments(ctx context.Context, ownerID string) ([]models.PaymentView, error) {
	set, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	payments := set.PaymentList()
	views := make([]models.PaymentView, 0, len(payments))
	for _, payment := range payments {
		views = append(views, paymentView(set, payment))
	}
	return views, nil
}

// Dashboard aggregates client counts, money received and per trip progress
func (s *QueryService) Dashboard(ctx context.Context, ownerID string) (*models.DashboardSummary, error) {
	set, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return Summarize(set), nil
}

// Summarize computes the dashboard figures for one entity set
func Summarize(set *models.EntitySet) *models.DashboardSummary {
	summary := &models.DashboardSummary{
		TotalClients: len(set.Clients),
		Trips:        []models.TripProgress{},
	}
	for _, client := range set.Clients {
		if client.Status == utils.StatusPaid {
			summary.PaidClients++
		} else {
			summary.PendingClients++
		}
	}

	var totals, paid, pending []float64
	for _, payment := range set.PaymentList() {
		totals = append(totals, payment.Total)
		paid = append(paid, PaidAmount(&payment))
		pending = append(pending, PendingAmount(&payment))
	}
	summary.TotalReceivable = utils.Sum(totals)
	summary.TotalReceived = utils.Sum(paid)
	summary.TotalPending = utils.Sum(pending)

	for _, trip := range set.TripList() {
		if trip.Status == utils.TripStatusActive {
			summary.ActiveTrips++
		}
		progress := models.TripProgress{
			TripID:  trip.ID,
			Name:    trip.Name,
			Status:  trip.Status,
			Clients: len(set.ClientsOfTrip(trip.ID)),
		}
		var received, expected []float64
		for _, payment := range set.PaymentsOfTrip(trip.ID) {
			received = append(received, PaidAmount(&payment))
			expected = append(expected, payment.Total)
		}
		progress.Received = utils.Sum(received)
		progress.Expected = utils.Sum(expected)
		summary.Trips = append(summary.Trips, progress)
	}
	return summary
}

// paymentView attaches derived figures plus the client and trip names
func paymentView(set *models.EntitySet, payment models.Payment) models.PaymentView {
	view := NewPaymentView(payment)
	if client, ok := set.Clients[payment.ClientID]; ok {
		view.ClientName = client.FullName
	}
	if payment.TripID != nil {
		if trip, ok := set.Trips[*payment.TripID]; ok {
			view.TripName = trip.Name
		}
	}
	return view
}
