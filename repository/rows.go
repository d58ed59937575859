package repository

import (
	"database/sql"
	"time"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// Row types mirror the tables column for column. They are the only place where
// nullable or loosely typed columns are coerced; the rest of the code sees
// models only.

type clientRow struct {
	ID          string
	OwnerID     string
	TripID      sql.NullString
	FullName    string
	NationalID  string
	SecondaryID sql.NullString
	BirthDate   models.Date
	Phone       string
	Email       sql.NullString
	Address     string
	Notes       sql.NullString
	Status      string
	CreatedAt   time.Time
}

func (r *clientRow) dest() []interface{} {
	return []interface{}{
		&r.ID, &r.OwnerID, &r.TripID, &r.FullName, &r.NationalID, &r.SecondaryID,
		&r.BirthDate, &r.Phone, &r.Email, &r.Address, &r.Notes, &r.Status, &r.CreatedAt,
	}
}

func (r *clientRow) toModel() models.Client {
	status := r.Status
	if status != utils.StatusPaid {
		status = utils.StatusPending
	}
	return models.Client{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		FullName:    r.FullName,
		NationalID:  r.NationalID,
		SecondaryID: r.SecondaryID.String,
		BirthDate:   r.BirthDate,
		Phone:       r.Phone,
		Email:       r.Email.String,
		Address:     r.Address,
		Notes:       r.Notes.String,
		TripID:      nullableID(r.TripID),
		Status:      status,
		CreatedAt:   r.CreatedAt,
	}
}

func clientArgs(c *models.Client) []interface{} {
	return []interface{}{
		c.ID, c.OwnerID, c.TripID, c.FullName, c.NationalID, nullString(c.SecondaryID),
		c.BirthDate, c.Phone, nullString(c.Email), c.Address, nullString(c.Notes), c.Status, c.CreatedAt,
	}
}

type tripRow struct {
	ID            string
	OwnerID       string
	Name          string
	Destination   string
	DepartureDate models.Date
	ReturnDate    models.Date
	Price         float64
	Status        string
	CreatedAt     time.Time
}

func (r *tripRow) dest() []interface{} {
	return []interface{}{
		&r.ID, &r.OwnerID, &r.Name, &r.Destination, &r.DepartureDate, &r.ReturnDate,
		&r.Price, &r.Status, &r.CreatedAt,
	}
}

func (r *tripRow) toModel() models.Trip {
	status := r.Status
	if status != utils.TripStatusFinished {
		status = utils.TripStatusActive
	}
	return models.Trip{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		Name:          r.Name,
		Destination:   r.Destination,
		DepartureDate: r.DepartureDate,
		ReturnDate:    r.ReturnDate,
		Price:         utils.Round(r.Price),
		Status:        status,
		CreatedAt:     r.CreatedAt,
	}
}

func tripArgs(t *models.Trip) []interface{} {
	return []interface{}{
		t.ID, t.OwnerID, t.Name, t.Destination, t.DepartureDate, t.ReturnDate, t.Price, t.Status, t.CreatedAt,
	}
}

type paymentRow struct {
	ID        string
	OwnerID   string
	ClientID  string
	TripID    sql.NullString
	Total     float64
	CreatedAt time.Time
}

func (r *paymentRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.OwnerID, &r.ClientID, &r.TripID, &r.Total, &r.CreatedAt}
}

func (r *paymentRow) toModel() models.Payment {
	return models.Payment{
		ID:           r.ID,
		OwnerID:      r.OwnerID,
		ClientID:     r.ClientID,
		TripID:       nullableID(r.TripID),
		Total:        utils.Round(r.Total),
		Installments: []models.Installment{},
		CreatedAt:    r.CreatedAt,
	}
}

func paymentArgs(p *models.Payment) []interface{} {
	return []interface{}{p.ID, p.OwnerID, p.ClientID, p.TripID, p.Total, p.CreatedAt}
}

type installmentRow struct {
	ID        string
	PaymentID string
	Position  int
	Amount    float64
	Method    string
	PaidOn    models.Date
	Note      sql.NullString
}

func (r *installmentRow) dest() []interface{} {
	return []interface{}{&r.ID, &r.PaymentID, &r.Position, &r.Amount, &r.Method, &r.PaidOn, &r.Note}
}

func (r *installmentRow) toModel() models.Installment {
	return models.Installment{
		ID:     r.ID,
		Amount: utils.Round(r.Amount),
		Method: r.Method,
		Date:   r.PaidOn,
		Note:   r.Note.String,
	}
}

func nullableID(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return models.StringPtr(v.String)
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
