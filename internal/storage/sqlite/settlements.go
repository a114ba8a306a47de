package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mtilda/chipin/internal/models"
	"github.com/mtilda/chipin/internal/storage"
)

// CreateSettlement persists a new settlement to the database.
func (s *SQLiteStore) CreateSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementPending
	}

	var note interface{} = nil
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settlements (id, trip_id, from_user_id, to_user_id, amount, status, note, created_by, created_at, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`,
		settlement.ID, settlement.TripID, settlement.FromUserID, settlement.ToUserID,
		settlement.Amount, string(settlement.Status), note, settlement.CreatedBy, settlement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// GetSettlement retrieves a settlement by ID.
// Soft-deleted settlements are still retrievable here; list queries hide them.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var note sql.NullString
	var deletedAt sql.NullInt64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, trip_id, from_user_id, to_user_id, amount, status, note, created_by, created_at, deleted_at
		 FROM settlements WHERE id = ?`,
		settlementID,
	).Scan(&settlement.ID, &settlement.TripID, &settlement.FromUserID, &settlement.ToUserID,
		&settlement.Amount, &settlement.Status, &note, &settlement.CreatedBy,
		&settlement.CreatedAt, &deletedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	if note.Valid {
		settlement.Note = note.String
	}
	if deletedAt.Valid {
		settlement.DeletedAt = &deletedAt.Int64
	}

	return settlement, nil
}

// ListSettlementsByTrip retrieves all live (not soft-deleted) settlements
// for a trip, regardless of status. Status filtering is the caller's job.
func (s *SQLiteStore) ListSettlementsByTrip(ctx context.Context, tripID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, from_user_id, to_user_id, amount, status, note, created_by, created_at
		 FROM settlements
		 WHERE trip_id = ? AND deleted_at IS NULL
		 ORDER BY created_at DESC`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements by trip: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var note sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.TripID, &settlement.FromUserID, &settlement.ToUserID,
			&settlement.Amount, &settlement.Status, &note, &settlement.CreatedBy, &settlement.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		if note.Valid {
			settlement.Note = note.String
		}

		settlements = append(settlements, settlement)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}

// UpdateSettlementStatus moves a settlement to a new lifecycle status.
// Transition validity is checked by the service layer.
func (s *SQLiteStore) UpdateSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET status = ? WHERE id = ? AND deleted_at IS NULL",
		string(status), settlementID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check status update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}

	return nil
}

// SoftDeleteSettlement marks a settlement deleted without removing the row.
func (s *SQLiteStore) SoftDeleteSettlement(ctx context.Context, settlementID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL",
		time.Now().Unix(), settlementID,
	)
	if err != nil {
		return fmt.Errorf("failed to soft-delete settlement: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check soft-delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}

	return nil
}
