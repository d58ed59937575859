package models

// PaymentView is a payment with its derived ledger figures
type PaymentView struct {
	Payment
	Paid       float64 `json:"paid"`
	Pending    float64 `json:"pending"`
	FullyPaid  bool    `json:"fullyPaid"`
	ClientName string  `json:"clientName,omitempty"`
	TripName   string  `json:"tripName,omitempty"`
}

// ClientResponse wraps a client mutation and the payment it linked, if any
type ClientResponse struct {
	Client         *Client  `json:"client"`
	Payment        *Payment `json:"payment,omitempty"`
	PaymentCreated bool     `json:"paymentCreated"`
}

// EnsurePaymentResponse reports whether the ledger was created or already existed
type EnsurePaymentResponse struct {
	Payment *Payment `json:"payment"`
	Created bool     `json:"created"`
}

// RegisterInstallmentResponse is returned after an installment lands
type RegisterInstallmentResponse struct {
	Payment      PaymentView `json:"payment"`
	Installment  Installment `json:"installment"`
	ClientStatus string      `json:"clientStatus"`
}

// TripProgress summarises collections for one trip
type TripProgress struct {
	TripID   string  `json:"tripId"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Clients  int     `json:"clients"`
	Received float64 `json:"received"`
	Expected float64 `json:"expected"`
}

// DashboardSummary aggregates the owner's bookings
type DashboardSummary struct {
	ActiveTrips     int            `json:"activeTrips"`
	TotalClients    int            `json:"totalClients"`
	PaidClients     int            `json:"paidClients"`
	PendingClients  int            `json:"pendingClients"`
	TotalReceivable float64        `json:"totalReceivable"`
	TotalReceived   float64        `json:"totalReceived"`
	TotalPending    float64        `json:"totalPending"`
	Trips           []TripProgress `json:"trips"`
}
