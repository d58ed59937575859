package services

import (
	"strings"
	"time"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// IDAllocator issues opaque identities for new entities
type IDAllocator interface {
	NewID(kind models.Collection) string
}

// Outcome is the result of planning one intent: the writes to apply and the
// state they lead to. Nothing has been persisted yet.
type Outcome struct {
	Unit        models.UnitOfWork
	State       *models.EntitySet
	Client      *models.Client
	Trip        *models.Trip
	Payment     *models.Payment
	Installment *models.Installment
	// Created is false when a link step found an existing ledger for the pair
	Created bool
	// NoOp is set when the target did not exist and nothing needs to be written
	NoOp bool
}

// Engine plans the cross-entity effects of every mutation. It holds no entity
// state; each call works on the set it is given and returns a new one.
type Engine struct {
	ids IDAllocator
	now func() time.Time
}

// NewEngine creates a new consistency engine
func NewEngine(ids IDAllocator) *Engine {
	return &Engine{ids: ids, now: time.Now}
}

// WithClock replaces the time source, used by tests
func (e *Engine) WithClock(now func() time.Time) *Engine {
	return &Engine{ids: e.ids, now: now}
}

func (e *Engine) finish(set *models.EntitySet, outcome *Outcome) *Outcome {
	outcome.State = set.Apply(outcome.Unit)
	return outcome
}

// CreateClient validates a new client and, when a trip is given, links its ledger
func (e *Engine) CreateClient(set *models.EntitySet, ownerID string, request *models.CreateClientRequest) (*Outcome, error) {
	client := models.Client{
		OwnerID:     ownerID,
		FullName:    strings.TrimSpace(request.FullName),
		NationalID:  utils.OnlyDigits(request.NationalID),
		SecondaryID: strings.TrimSpace(request.SecondaryID),
		BirthDate:   request.BirthDate,
		Phone:       utils.OnlyDigits(request.Phone),
		Email:       strings.TrimSpace(request.Email),
		Address:     strings.TrimSpace(request.Address),
		Notes:       strings.TrimSpace(request.Notes),
		TripID:      models.StringPtr(strings.TrimSpace(request.TripID)),
		Status:      utils.StatusPending,
		CreatedAt:   e.now(),
	}
	if err := validateClient(set, &client, request.NationalID, request.Phone); err != nil {
		return nil, err
	}

	client.ID = e.ids.NewID(models.CollectionClients)
	outcome := &Outcome{Client: &client}
	outcome.Unit.UpsertClient(client)

	if client.TripID != nil {
		trip := set.Trips[*client.TripID]
		payment, created := e.ensureLink(set, &outcome.Unit, &client, &trip)
		outcome.Payment = &payment
		outcome.Created = created
	}
	return e.finish(set, outcome), nil
}

// UpdateClient merges a patch. Moving to another trip links a ledger for the new
// trip and leaves the ledger of the previous trip in place.
func (e *Engine) UpdateClient(set *models.EntitySet, clientID string, patch *models.UpdateClientRequest) (*Outcome, error) {
	current, exists := set.Clients[clientID]
	if !exists {
		return nil, utils.NewNotFoundError("Client")
	}

	merged := current.Clone()
	rawNationalID, rawPhone := merged.NationalID, merged.Phone
	if patch.FullName != nil {
		merged.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.NationalID != nil {
		rawNationalID = *patch.NationalID
		merged.NationalID = utils.OnlyDigits(rawNationalID)
	}
	if patch.SecondaryID != nil {
		merged.SecondaryID = strings.TrimSpace(*patch.SecondaryID)
	}
	if patch.BirthDate != nil {
		merged.BirthDate = *patch.BirthDate
	}
	if patch.Phone != nil {
		rawPhone = *patch.Phone
		merged.Phone = utils.OnlyDigits(rawPhone)
	}
	if patch.Email != nil {
		merged.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.Address != nil {
		merged.Address = strings.TrimSpace(*patch.Address)
	}
	if patch.Notes != nil {
		merged.Notes = strings.TrimSpace(*patch.Notes)
	}
	if patch.TripID.Set {
		merged.TripID = patch.TripID.Ptr()
	}

	if err := validateClient(set, &merged, rawNationalID, rawPhone); err != nil {
		return nil, err
	}

	outcome := &Outcome{Client: &merged}
	outcome.Unit.UpsertClient(merged)

	if patch.TripID.Set && merged.TripID != nil && !current.HasTrip(*merged.TripID) {
		trip := set.Trips[*merged.TripID]
		payment, created := e.ensureLink(set, &outcome.Unit, &merged, &trip)
		outcome.Payment = &payment
		outcome.Created = created
	}
	return e.finish(set, outcome), nil
}

// DeleteClient removes a client together with every ledger it owns.
// Deleting a missing client is a no-op.
func (e *Engine) DeleteClient(set *models.EntitySet, clientID string) (*Outcome, error) {
	client, exists := set.Clients[clientID]
	if !exists {
		return &Outcome{NoOp: true, State: set}, nil
	}

	outcome := &Outcome{Client: &client}
	for _, payment := range set.PaymentsOfClient(clientID) {
		outcome.Unit.Delete(models.CollectionPayments, payment.ID)
	}
	outcome.Unit.Delete(models.CollectionClients, clientID)
	return e.finish(set, outcome), nil
}

// EnsurePayment returns the ledger of a (client, trip) pair, creating it with the
// trip's current price when none exists
func (e *Engine) EnsurePayment(set *models.EntitySet, clientID, tripID string) (*Outcome, error) {
	client, exists := set.Clients[clientID]
	if !exists {
		return nil, utils.NewNotFoundError("Client")
	}
	trip, exists := set.Trips[tripID]
	if !exists {
		return nil, utils.NewNotFoundError("Trip")
	}

	outcome := &Outcome{Client: &client, Trip: &trip}
	payment, created := e.ensureLink(set, &outcome.Unit, &client, &trip)
	outcome.Payment = &payment
	outcome.Created = created
	return e.finish(set, outcome), nil
}

// ensureLink looks up the pair's ledger before creating one; the total is a
// snapshot of the trip price and never follows later price changes
func (e *Engine) ensureLink(set *models.EntitySet, unit *models.UnitOfWork, client *models.Client, trip *models.Trip) (models.Payment, bool) {
	if existing, found := set.FindPayment(client.ID, trip.ID); found {
		return existing, false
	}

	payment := models.Payment{
		ID:           e.ids.NewID(models.CollectionPayments),
		OwnerID:      client.OwnerID,
		ClientID:     client.ID,
		TripID:       models.StringPtr(trip.ID),
		Total:        utils.Round(trip.Price),
		Installments: []models.Installment{},
		CreatedAt:    e.now(),
	}
	unit.UpsertPayment(payment)
	return payment, true
}

// CreateTrip validates and stores a new trip
func (e *Engine) CreateTrip(set *models.EntitySet, ownerID string, request *models.CreateTripRequest) (*Outcome, error) {
	trip := models.Trip{
		OwnerID:       ownerID,
		Name:          strings.TrimSpace(request.Name),
		Destination:   strings.TrimSpace(request.Destination),
		DepartureDate: request.DepartureDate,
		ReturnDate:    request.ReturnDate,
		Price:         utils.Round(request.Price),
		Status:        strings.ToLower(strings.TrimSpace(request.Status)),
		CreatedAt:     e.now(),
	}
	if trip.Status == "" {
		trip.Status = utils.TripStatusActive
	}
	if err := validateTrip(&trip); err != nil {
		return nil, err
	}

	trip.ID = e.ids.NewID(models.CollectionTrips)
	outcome := &Outcome{Trip: &trip}
	outcome.Unit.UpsertTrip(trip)
	return e.finish(set, outcome), nil
}

// UpdateTrip merges a patch. Existing ledger totals keep their snapshot.
func (e *Engine) UpdateTrip(set *models.EntitySet, tripID string, patch *models.UpdateTripRequest) (*Outcome, error) {
	trip, exists := set.Trips[tripID]
	if !exists {
		return nil, utils.NewNotFoundError("Trip")
	}

	if patch.Name != nil {
		trip.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Destination != nil {
		trip.Destination = strings.TrimSpace(*patch.Destination)
	}
	if patch.DepartureDate != nil {
		trip.DepartureDate = *patch.DepartureDate
	}
	if patch.ReturnDate != nil {
		trip.ReturnDate = *patch.ReturnDate
	}
	if patch.Price != nil {
		trip.Price = utils.Round(*patch.Price)
	}
	if patch.Status != nil {
		trip.Status = strings.ToLower(strings.TrimSpace(*patch.Status))
	}
	if err := validateTrip(&trip); err != nil {
		return nil, err
	}

	outcome := &Outcome{Trip: &trip}
	outcome.Unit.UpsertTrip(trip)
	return e.finish(set, outcome), nil
}

// DeleteTrip removes a trip without losing collected money. Ledgers with nothing
// paid are deleted and their client goes back to pending; ledgers with payments
// are detached from the trip. Every client booked on the trip is detached.
func (e *Engine) DeleteTrip(set *models.EntitySet, tripID string) (*Outcome, error) {
	trip, exists := set.Trips[tripID]
	if !exists {
		return &Outcome{NoOp: true, State: set}, nil
	}

	outcome := &Outcome{Trip: &trip}
	touched := make(map[string]models.Client)
	var order []string
	touch := func(clientID string) (models.Client, bool) {
		if c, ok := touched[clientID]; ok {
			return c, true
		}
		c, ok := set.Clients[clientID]
		if !ok {
			return models.Client{}, false
		}
		order = append(order, clientID)
		return c.Clone(), true
	}

	for _, payment := range set.PaymentsOfTrip(tripID) {
		if PaidAmount(&payment) == 0 {
			outcome.Unit.Delete(models.CollectionPayments, payment.ID)
			if client, ok := touch(payment.ClientID); ok {
				client.Status = utils.StatusPending
				touched[client.ID] = client
			}
			continue
		}
		payment.TripID = nil
		outcome.Unit.UpsertPayment(payment)
	}

	for _, linked := range set.ClientsOfTrip(tripID) {
		client, _ := touch(linked.ID)
		client.TripID = nil
		touched[client.ID] = client
	}

	for _, clientID := range order {
		outcome.Unit.UpsertClient(touched[clientID])
	}
	outcome.Unit.Delete(models.CollectionTrips, tripID)
	return e.finish(set, outcome), nil
}

// RegisterPayment appends an installment and, when the ledger becomes fully
// paid, marks the client as paid in the same unit
func (e *Engine) RegisterPayment(set *models.EntitySet, paymentID string, request *models.InstallmentRequest) (*Outcome, error) {
	payment, exists := set.Payments[paymentID]
	if !exists {
		return nil, utils.NewPaymentNotFoundError(paymentID)
	}

	input := *request
	if input.Date.IsZero() {
		input.Date = models.DateOf(e.now())
	}
	updated, installment, err := RegisterInstallment(&payment, &input, func() string {
		return e.ids.NewID(models.CollectionInstallments)
	})
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Payment: &updated, Installment: &installment}
	outcome.Unit.UpsertPayment(updated)

	if client, ok := set.Clients[updated.ClientID]; ok {
		client = client.Clone()
		if StatusFor(&updated) == utils.StatusPaid && client.Status != utils.StatusPaid {
			client.Status = utils.StatusPaid
			outcome.Unit.UpsertClient(client)
		}
		outcome.Client = &client
	}
	return e.finish(set, outcome), nil
}

// DeletePayment removes a ledger and its history. The client status is left as
// it is, a fully paid client stays paid.
func (e *Engine) DeletePayment(set *models.EntitySet, paymentID string) (*Outcome, error) {
	payment, exists := set.Payments[paymentID]
	if !exists {
		return &Outcome{NoOp: true, State: set}, nil
	}

	outcome := &Outcome{Payment: &payment}
	outcome.Unit.Delete(models.CollectionPayments, paymentID)
	return e.finish(set, outcome), nil
}

// ToggleClientStatus flips paid and pending by hand, independent of the ledger
func (e *Engine) ToggleClientStatus(set *models.EntitySet, clientID string) (*Outcome, error) {
	client, exists := set.Clients[clientID]
	if !exists {
		return nil, utils.NewNotFoundError("Client")
	}

	client = client.Clone()
	if client.Status == utils.StatusPaid {
		client.Status = utils.StatusPending
	} else {
		client.Status = utils.StatusPaid
	}

	outcome := &Outcome{Client: &client}
	outcome.Unit.UpsertClient(client)
	return e.finish(set, outcome), nil
}

// validateClient collects every field failure at once. rawNationalID and rawPhone
// are the values as typed, so masked input with stray letters is still rejected.
func validateClient(set *models.EntitySet, client *models.Client, rawNationalID, rawPhone string) error {
	fields := utils.FieldErrors{}
	fields.Check("fullName", utils.ValidateName(client.FullName, "full name"))
	fields.Check("nationalId", utils.ValidateCPF(rawNationalID))
	if strings.ContainsFunc(rawNationalID, isLetter) {
		fields.Add("nationalId", "national ID is invalid")
	}
	fields.Check("birthDate", utils.ValidateDate(client.BirthDate.Time, "birth date"))
	fields.Check("phone", utils.ValidatePhone(rawPhone))
	if strings.ContainsFunc(rawPhone, isLetter) {
		fields.Add("phone", "phone must have 10 or 11 digits")
	}
	fields.Check("email", utils.ValidateEmail(client.Email))
	fields.Check("address", utils.ValidateRequired(client.Address, "address"))
	if client.TripID != nil {
		if _, exists := set.Trips[*client.TripID]; !exists {
			fields.Add("tripId", "trip not found")
		}
	}
	return fields.Err()
}

func validateTrip(trip *models.Trip) error {
	fields := utils.FieldErrors{}
	fields.Check("name", utils.ValidateRequired(trip.Name, "name"))
	fields.Check("destination", utils.ValidateRequired(trip.Destination, "destination"))
	fields.Check("departureDate", utils.ValidateDate(trip.DepartureDate.Time, "departure date"))
	fields.Check("returnDate", utils.ValidateDate(trip.ReturnDate.Time, "return date"))
	if !trip.DepartureDate.IsZero() && !trip.ReturnDate.IsZero() && trip.ReturnDate.Before(trip.DepartureDate) {
		fields.Add("returnDate", "return date must not be before departure date")
	}
	fields.Check("price", utils.ValidatePositive(trip.Price, "price"))
	fields.Check("status", utils.ValidateOneOf(trip.Status, []string{utils.TripStatusActive, utils.TripStatusFinished}, "status"))
	return fields.Err()
}

func isLetter(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}
