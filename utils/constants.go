package utils

const (
	// Client payment status
	StatusPaid    = "paid"
	StatusPending = "pending"

	// Trip status
	TripStatusActive   = "active"
	TripStatusFinished = "finished"

	// Installment payment methods
	MethodPix      = "pix"
	MethodCard     = "card"
	MethodCash     = "cash"
	MethodTransfer = "transfer"

	// Calendar date layout used on the wire and in storage
	DateLayout = "2006-01-02"

	// Owner scoping header, resolved by the external auth layer
	OwnerHeader = "X-Owner-ID"

	// HTTP status messages
	ErrInvalidRequest   = "Invalid request"
	ErrMissingOwner     = "Owner is required"
	ErrClientNotFound   = "Client not found"
	ErrTripNotFound     = "Trip not found"
	ErrPaymentNotFound  = "Payment not found"
	ErrFailedToStore    = "Failed to store data"
	ErrFailedToRetrieve = "Failed to retrieve data"
	ErrAmountExceeds    = "Amount exceeds pending balance"

	// Precision for monetary calculations
	MoneyPrecision = 100.0

	// Slack allowed when comparing money sums against a total
	MoneyTolerance = 0.01
)

// PaymentMethods lists the accepted installment methods in display order
var PaymentMethods = []string{MethodPix, MethodCard, MethodCash, MethodTransfer}
