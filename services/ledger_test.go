package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadhlanhapp/tripdesk-backend/models"
	"github.com/fadhlanhapp/tripdesk-backend/utils"
)

func ledger(total float64, amounts ...float64) *models.Payment {
	p := &models.Payment{ID: "p1", ClientID: "c1", Total: total, Installments: []models.Installment{}}
	for _, amount := range amounts {
		p.Installments = append(p.Installments, models.Installment{Amount: amount, Method: utils.MethodPix})
	}
	return p
}

func TestLedgerFigures(t *testing.T) {
	tests := []struct {
		name    string
		payment *models.Payment
		paid    float64
		pending float64
		full    bool
	}{
		{"empty", ledger(1000), 0, 1000, false},
		{"partial", ledger(1000, 400), 400, 600, false},
		{"settled", ledger(1000, 400, 600), 1000, 0, true},
		{"cents add up", ledger(0.3, 0.1, 0.2), 0.3, 0, true},
		{"overpaid floors pending", ledger(100, 100.01), 100.01, 0, true},
		{"zero total", ledger(0), 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.paid, PaidAmount(tt.payment))
			assert.Equal(t, tt.pending, PendingAmount(tt.payment))
			assert.Equal(t, tt.full, IsFullyPaid(tt.payment))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, utils.StatusPending, StatusFor(ledger(1000, 999.99)))
	assert.Equal(t, utils.StatusPaid, StatusFor(ledger(1000, 999.99, 0.01)))
}

func TestRegisterInstallment(t *testing.T) {
	payment := ledger(1000, 400)
	request := &models.InstallmentRequest{Amount: 600, Method: " PIX ", Date: models.NewDate(2025, 5, 1), Note: "rest"}

	updated, inst, err := RegisterInstallment(payment, request, func() string { return "i2" })
	require.NoError(t, err)

	assert.Equal(t, "i2", inst.ID)
	assert.Equal(t, utils.MethodPix, inst.Method)
	assert.Len(t, updated.Installments, 2)
	assert.True(t, IsFullyPaid(&updated))
	assert.Len(t, payment.Installments, 1, "input ledger must not change")
}

func TestRegisterInstallment_Rejections(t *testing.T) {
	payment := ledger(1000, 400)
	date := models.NewDate(2025, 5, 1)
	newID := func() string { return "i9" }

	_, _, err := RegisterInstallment(payment, &models.InstallmentRequest{Amount: 700, Method: utils.MethodCash, Date: date}, newID)
	assert.True(t, utils.IsKind(err, utils.KindAmountExceedsPending))

	_, _, err = RegisterInstallment(payment, &models.InstallmentRequest{Amount: 0, Method: utils.MethodCash, Date: date}, newID)
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	_, _, err = RegisterInstallment(payment, &models.InstallmentRequest{Amount: 10, Method: "cheque", Date: date}, newID)
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	_, _, err = RegisterInstallment(payment, &models.InstallmentRequest{Amount: 10, Method: utils.MethodCard}, newID)
	assert.True(t, utils.IsKind(err, utils.KindValidationFailed))

	// within the cent tolerance
	_, _, err = RegisterInstallment(payment, &models.InstallmentRequest{Amount: 600.005, Method: utils.MethodCard, Date: date}, newID)
	assert.NoError(t, err)
}
