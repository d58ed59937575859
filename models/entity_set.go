package models

import "sort"

// EntitySet is one owner's clients, trips and payments, keyed by id
type EntitySet struct {
	Clients  map[string]Client
	Trips    map[string]Trip
	Payments map[string]Payment
}

// NewEntitySet builds a set from the slices returned by the store
func NewEntitySet(clients []Client, trips []Trip, payments []Payment) *EntitySet {
	set := &EntitySet{
		Clients:  make(map[string]Client, len(clients)),
		Trips:    make(map[string]Trip, len(trips)),
		Payments: make(map[string]Payment, len(payments)),
	}
	for _, c := range clients {
		set.Clients[c.ID] = c.Clone()
	}
	for _, t := range trips {
		set.Trips[t.ID] = t
	}
	for _, p := range payments {
		set.Payments[p.ID] = p.Clone()
	}
	return set
}

// Clone deep-copies the set
func (s *EntitySet) Clone() *EntitySet {
	return NewEntitySet(s.ClientList(), s.TripList(), s.PaymentList())
}

// Apply returns a new set with the unit applied; the receiver is not modified
func (s *EntitySet) Apply(unit UnitOfWork) *EntitySet {
	next := s.Clone()
	for _, op := range unit.Ops {
		switch op.Collection {
		case CollectionClients:
			if op.Kind == OpDelete {
				delete(next.Clients, op.ID)
			} else {
				next.Clients[op.ID] = op.Client.Clone()
			}
		case CollectionTrips:
			if op.Kind == OpDelete {
				delete(next.Trips, op.ID)
			} else {
				next.Trips[op.ID] = *op.Trip
			}
		case CollectionPayments:
			if op.Kind == OpDelete {
				delete(next.Payments, op.ID)
			} else {
				next.Payments[op.ID] = op.Payment.Clone()
			}
		}
	}
	return next
}

// FindPayment returns the ledger of a (client, trip) pair
func (s *EntitySet) FindPayment(clientID, tripID string) (Payment, bool) {
	for _, p := range s.PaymentList() {
		if p.ClientID == clientID && p.HasTrip(tripID) {
			return p, true
		}
	}
	return Payment{}, false
}

// PaymentsOfClient lists every ledger owned by a client, detached ones included
func (s *EntitySet) PaymentsOfClient(clientID string) []Payment {
	var payments []Payment
	for _, p := range s.PaymentList() {
		if p.ClientID == clientID {
			payments = append(payments, p)
		}
	}
	return payments
}

// PaymentsOfTrip lists the ledgers still attached to a trip
func (s *EntitySet) PaymentsOfTrip(tripID string) []Payment {
	var payments []Payment
	for _, p := range s.PaymentList() {
		if p.HasTrip(tripID) {
			payments = append(payments, p)
		}
	}
	return payments
}

// ClientsOfTrip lists the clients currently booked on a trip
func (s *EntitySet) ClientsOfTrip(tripID string) []Client {
	var clients []Client
	for _, c := range s.ClientList() {
		if c.HasTrip(tripID) {
			clients = append(clients, c)
		}
	}
	return clients
}

// ClientList returns clients ordered by name, then id
func (s *EntitySet) ClientList() []Client {
	clients := make([]Client, 0, len(s.Clients))
	for _, c := range s.Clients {
		clients = append(clients, c.Clone())
	}
	sort.Slice(clients, func(i, j int) bool {
		if clients[i].FullName != clients[j].FullName {
			return clients[i].FullName < clients[j].FullName
		}
		return clients[i].ID < clients[j].ID
	})
	return clients
}

// TripList returns trips ordered by departure date, then id
func (s *EntitySet) TripList() []Trip {
	trips := make([]Trip, 0, len(s.Trips))
	for _, t := range s.Trips {
		trips = append(trips, t)
	}
	sort.Slice(trips, func(i, j int) bool {
		if !trips[i].DepartureDate.Equal(trips[j].DepartureDate.Time) {
			return trips[i].DepartureDate.Before(trips[j].DepartureDate)
		}
		return trips[i].ID < trips[j].ID
	})
	return trips
}

// PaymentList returns payments ordered by creation time, then id
func (s *EntitySet) PaymentList() []Payment {
	payments := make([]Payment, 0, len(s.Payments))
	for _, p := range s.Payments {
		payments = append(payments, p.Clone())
	}
	sort.Slice(payments, func(i, j int) bool {
		if !payments[i].CreatedAt.Equal(payments[j].CreatedAt) {
			return payments[i].CreatedAt.Before(payments[j].CreatedAt)
		}
		return payments[i].ID < payments[j].ID
	})
	return payments
}
