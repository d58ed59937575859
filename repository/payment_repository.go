package repository

import (
	"context"
	"fmt"

	"github.com/fadhlanhapp/tripdesk-backend/models"
)

const (
	paymentColumns     = `id, owner_id, client_id, trip_id, total, created_at`
	installmentColumns = `id, payment_id, position, amount, method, paid_on, note`
)

// PaymentRepository handles payment and installment data operations
type PaymentRepository struct {
	dialect dialect
}

// ListPayments retrieves every payment of an owner with its installments in order
func (r PaymentRepository) ListPayments(ctx context.Context, q queryer, ownerID string) ([]models.Payment, error) {
	rows, err := q.QueryContext(ctx, r.dialect.rebind(
		"SELECT "+paymentColumns+" FROM payments WHERE owner_id = ? ORDER BY created_at, id"), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	index := make(map[string]int)
	for rows.Next() {
		var row paymentRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		index[row.ID] = len(payments)
		payments = append(payments, row.toModel())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	installments, err := q.QueryContext(ctx, r.dialect.rebind(
		"SELECT "+installmentColumns+" FROM installments WHERE owner_id = ? ORDER BY payment_id, position"), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments: %w", err)
	}
	defer installments.Close()

	for installments.Next() {
		var row installmentRow
		if err := installments.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		i, ok := index[row.PaymentID]
		if !ok {
			continue
		}
		payments[i].Installments = append(payments[i].Installments, row.toModel())
	}
	return payments, installments.Err()
}

// UpsertPayment writes the payment row and replaces its installment list
func (r PaymentRepository) UpsertPayment(ctx context.Context, q queryer, payment *models.Payment) error {
	query := "INSERT INTO payments (" + paymentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			client_id = excluded.client_id,
			trip_id = excluded.trip_id,
			total = excluded.total
		WHERE payments.owner_id = excluded.owner_id`
	res, err := q.ExecContext(ctx, r.dialect.rebind(query), paymentArgs(payment)...)
	if err != nil {
		return fmt.Errorf("failed to upsert payment %s: %w", payment.ID, err)
	}
	if err := expectRow(res, "payment", payment.ID); err != nil {
		return err
	}

	if err := r.deleteInstallments(ctx, q, payment.OwnerID, payment.ID); err != nil {
		return err
	}
	for position, inst := range payment.Installments {
		_, err := q.ExecContext(ctx, r.dialect.rebind(
			"INSERT INTO installments (owner_id, "+installmentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)"),
			payment.OwnerID, inst.ID, payment.ID, position, inst.Amount, inst.Method, inst.Date, nullString(inst.Note))
		if err != nil {
			return fmt.Errorf("failed to insert installment %s: %w", inst.ID, err)
		}
	}
	return nil
}

// DeletePayment removes a payment together with its installments
func (r PaymentRepository) DeletePayment(ctx context.Context, q queryer, ownerID, id string) error {
	if err := r.deleteInstallments(ctx, q, ownerID, id); err != nil {
		return err
	}
	_, err := q.ExecContext(ctx, r.dialect.rebind("DELETE FROM payments WHERE id = ? AND owner_id = ?"), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", id, err)
	}
	return nil
}

func (r PaymentRepository) deleteInstallments(ctx context.Context, q queryer, ownerID, paymentID string) error {
	_, err := q.ExecContext(ctx, r.dialect.rebind(
		"DELETE FROM installments WHERE payment_id = ? AND owner_id = ?"), paymentID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete installments of payment %s: %w", paymentID, err)
	}
	return nil
}
