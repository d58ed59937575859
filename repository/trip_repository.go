// repository/trip_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/fadhlanhapp/tripdesk-backend/models"
)

const tripColumns = `id, owner_id, name, destination, departure_date, return_date, price, status, created_at`

// TripRepository handles database operations for trips
type TripRepository struct {
	dialect dialect
}

// ListTrips retrieves every trip of an owner
func (r TripRepository) ListTrips(ctx context.Context, q queryer, ownerID string) ([]models.Trip, error) {
	rows, err := q.QueryContext(ctx, r.dialect.rebind(
		"SELECT "+tripColumns+" FROM trips WHERE owner_id = ? ORDER BY departure_date, id"), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	trips := []models.Trip{}
	for rows.Next() {
		var row tripRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, row.toModel())
	}
	return trips, rows.Err()
}

// UpsertTrip inserts the trip or overwrites the stored row with the same id
func (r TripRepository) UpsertTrip(ctx context.Context, q queryer, trip *models.Trip) error {
	query := "INSERT INTO trips (" + tripColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			destination = excluded.destination,
			departure_date = excluded.departure_date,
			return_date = excluded.return_date,
			price = excluded.price,
			status = excluded.status
		WHERE trips.owner_id = excluded.owner_id`
	res, err := q.ExecContext(ctx, r.dialect.rebind(query), tripArgs(trip)...)
	if err != nil {
		return fmt.Errorf("failed to upsert trip %s: %w", trip.ID, err)
	}
	return expectRow(res, "trip", trip.ID)
}

// DeleteTrip removes a trip row. Clients and payments pointing at it must have
// been detached earlier in the same transaction.
func (r TripRepository) DeleteTrip(ctx context.Context, q queryer, ownerID, id string) error {
	_, err := q.ExecContext(ctx, r.dialect.rebind("DELETE FROM trips WHERE id = ? AND owner_id = ?"), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete trip %s: %w", id, err)
	}
	return nil
}
