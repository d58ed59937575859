// repository/client_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fadhlanhapp/tripdesk-backend/models"
)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

const clientColumns = `id, owner_id, trip_id, full_name, national_id, secondary_id,
	birth_date, phone, email, address, notes, status, created_at`

// ClientRepository handles database operations for clients
type ClientRepository struct {
	dialect dialect
}

// ListClients retrieves every client of an owner
func (r ClientRepository) ListClients(ctx context.Context, q queryer, ownerID string) ([]models.Client, error) {
	rows, err := q.QueryContext(ctx, r.dialect.rebind(
		"SELECT "+clientColumns+" FROM clients WHERE owner_id = ? ORDER BY full_name, id"), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var row clientRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, row.toModel())
	}
	return clients, rows.Err()
}

// UpsertClient inserts the client or overwrites the stored row with the same id
func (r ClientRepository) UpsertClient(ctx context.Context, q queryer, client *models.Client) error {
	query := "INSERT INTO clients (" + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			trip_id = excluded.trip_id,
			full_name = excluded.full_name,
			national_id = excluded.national_id,
			secondary_id = excluded.secondary_id,
			birth_date = excluded.birth_date,
			phone = excluded.phone,
			email = excluded.email,
			address = excluded.address,
			notes = excluded.notes,
			status = excluded.status
		WHERE clients.owner_id = excluded.owner_id`
	res, err := q.ExecContext(ctx, r.dialect.rebind(query), clientArgs(client)...)
	if err != nil {
		return fmt.Errorf("failed to upsert client %s: %w", client.ID, err)
	}
	return expectRow(res, "client", client.ID)
}

// DeleteClient removes a client row
func (r ClientRepository) DeleteClient(ctx context.Context, q queryer, ownerID, id string) error {
	_, err := q.ExecContext(ctx, r.dialect.rebind("DELETE FROM clients WHERE id = ? AND owner_id = ?"), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	return nil
}

// expectRow fails an upsert whose conflict guard skipped the update, which only
// happens when the id belongs to another owner
func expectRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return nil
	}
	if n == 0 {
		return fmt.Errorf("%s %s is owned by another account", kind, id)
	}
	return nil
}
