package services

import (
	"fmt"
	"strings"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

// PaidAmount sums the installment history
func PaidAmount(payment *models.Payment) float64 {
	var paid float64
	for _, installment := range payment.Installments {
		paid += installment.Amount
	}
	return utils.Round(paid)
}

// RawPending is total minus paid without flooring; validation uses this value
func RawPending(payment *models.Payment) float64 {
	return utils.Round(payment.Total - PaidAmount(payment))
}

// PendingAmount is the balance left to pay, floored at 0 for display
func PendingAmount(payment *models.Payment) float64 {
	return utils.Max(RawPending(payment), 0)
}

// IsFullyPaid reports whether the installments cover the total
func IsFullyPaid(payment *models.Payment) bool {
	return PaidAmount(payment) >= utils.Round(payment.Total)
}

// StatusFor derives the client status a ledger implies
func StatusFor(payment *models.Payment) string {
	if IsFullyPaid(payment) {
		return utils.StatusPaid
	}
	return utils.StatusPending
}

// NewPaymentView attaches the derived ledger figures to a payment
func NewPaymentView(payment models.Payment) models.PaymentView {
	return models.PaymentView{
		Payment:   payment,
		Paid:      PaidAmount(&payment),
		Pending:   PendingAmount(&payment),
		FullyPaid: IsFullyPaid(&payment),
	}
}

// ValidateInstallment checks an installment request against the ledger
func ValidateInstallment(payment *models.Payment, request *models.InstallmentRequest) error {
	fields := utils.FieldErrors{}
	fields.Check("amount", utils.ValidatePositive(request.Amount, "amount"))
	fields.Check("method", utils.ValidateOneOf(strings.ToLower(strings.TrimSpace(request.Method)), utils.PaymentMethods, "method"))
	fields.Check("date", utils.ValidateDate(request.Date.Time, "date"))
	if err := fields.Err(); err != nil {
		return err
	}

	pending := RawPending(payment)
	if request.Amount > pending+utils.MoneyTolerance {
		return utils.NewAmountExceedsPendingError(request.Amount, pending)
	}
	return nil
}

// RegisterInstallment appends one installment and returns the updated payment.
// The given payment is not modified.
func RegisterInstallment(payment *models.Payment, request *models.InstallmentRequest, newID func() string) (models.Payment, models.Installment, error) {
	if err := ValidateInstallment(payment, request); err != nil {
		return models.Payment{}, models.Installment{}, err
	}

	installment := models.Installment{
		ID:     newID(),
		Amount: utils.Round(request.Amount),
		Method: strings.ToLower(strings.TrimSpace(request.Method)),
		Date:   request.Date,
		Note:   strings.TrimSpace(request.Note),
	}
	if installment.ID == "" {
		return models.Payment{}, models.Installment{}, utils.NewInternalError(fmt.Sprintf("no identity issued for installment on payment %s", payment.ID))
	}

	updated := payment.Clone()
	updated.Installments = append(updated.Installments, installment)
	return updated, installment, nil
}
