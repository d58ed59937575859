package models

import (
	"encoding/json"
	"strings"
)

// TripLink is a tri-state trip reference in a patch: absent, cleared (null) or set
type TripLink struct {
	Set bool
	ID  string
}

// LinkTo returns a patch value linking to tripID; an empty id clears the link
func LinkTo(tripID string) TripLink {
	return TripLink{Set: true, ID: tripID}
}

func (l *TripLink) UnmarshalJSON(data []byte) error {
	l.Set = true
	if string(data) == "null" {
		l.ID = ""
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	l.ID = strings.TrimSpace(id)
	return nil
}

func (l TripLink) MarshalJSON() ([]byte, error) {
	if l.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(l.ID)
}

// Ptr converts the link into the entity representation
func (l TripLink) Ptr() *string {
	return StringPtr(l.ID)
}

// CreateClientRequest request model
type CreateClientRequest struct {
	FullName    string `json:"fullName"`
	NationalID  string `json:"nationalId"`
	SecondaryID string `json:"secondaryId"`
	BirthDate   Date   `json:"birthDate"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
	TripID      string `json:"tripId"`
}

// UpdateClientRequest is a partial update; nil fields are left untouched.
// Status is not patchable, use the toggle operation.
type UpdateClientRequest struct {
	FullName    *string  `json:"fullName"`
	NationalID  *string  `json:"nationalId"`
	SecondaryID *string  `json:"secondaryId"`
	BirthDate   *Date    `json:"birthDate"`
	Phone       *string  `json:"phone"`
	Email       *string  `json:"email"`
	Address     *string  `json:"address"`
	Notes       *string  `json:"notes"`
	TripID      TripLink `json:"tripId"`
}

// CreateTripRequest request model
type CreateTripRequest struct {
	Name          string  `json:"name"`
	Destination   string  `json:"destination"`
	DepartureDate Date    `json:"departureDate"`
	ReturnDate    Date    `json:"returnDate"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
}

// UpdateTripRequest is a partial update; nil fields are left untouched
type UpdateTripRequest struct {
	Name          *string  `json:"name"`
	Destination   *string  `json:"destination"`
	DepartureDate *Date    `json:"departureDate"`
	ReturnDate    *Date    `json:"returnDate"`
	Price         *float64 `json:"price"`
	Status        *string  `json:"status"`
}

// EnsurePaymentRequest links a ledger to a (client, trip) pair
type EnsurePaymentRequest struct {
	ClientID string `json:"clientId" binding:"required"`
	TripID   string `json:"tripId" binding:"required"`
}

// InstallmentRequest registers one installment against a payment
type InstallmentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Date   Date    `json:"date"`
	Note   string  `json:"note"`
}
