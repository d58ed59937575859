// models/models.go
package models

import "time"

// Client represents a traveler, optionally booked on one trip
type Client struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	FullName    string    `json:"fullName"`
	NationalID  string    `json:"nationalId"`
	SecondaryID string    `json:"secondaryId,omitempty"`
	BirthDate   Date      `json:"birthDate"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	TripID      *string   `json:"tripId"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Trip represents a bookable travel product
type Trip struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"ownerId"`
	Name          string    `json:"name"`
	Destination   string    `json:"destination"`
	DepartureDate Date      `json:"departureDate"`
	ReturnDate    Date      `json:"returnDate"`
	Price         float64   `json:"price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Payment is the ledger of one (client, trip) booking. Total is frozen at link time.
type Payment struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"ownerId"`
	ClientID     string        `json:"clientId"`
	TripID       *string       `json:"tripId"`
	Total        float64       `json:"total"`
	Installments []Installment `json:"installments"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Installment is one recorded partial payment
type Installment struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Date   Date    `json:"date"`
	Note   string  `json:"note,omitempty"`
}

// HasTrip reports whether the client is currently booked on tripID
func (c *Client) HasTrip(tripID string) bool {
	return c.TripID != nil && *c.TripID == tripID
}

// HasTrip reports whether the payment is still attached to tripID
func (p *Payment) HasTrip(tripID string) bool {
	return p.TripID != nil && *p.TripID == tripID
}

// Clone copies the payment including its installment slice
func (p Payment) Clone() Payment {
	clone := p
	clone.TripID = cloneID(p.TripID)
	clone.Installments = append([]Installment(nil), p.Installments...)
	return clone
}

// Clone copies the client so the trip pointer is not shared
func (c Client) Clone() Client {
	clone := c
	clone.TripID = cloneID(c.TripID)
	return clone
}

// StringPtr returns a pointer to a copy of id, or nil for the empty string
func StringPtr(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func cloneID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
