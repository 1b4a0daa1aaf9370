package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"courier-delivery-service/internal/domain"
)

// TrackingRepo represents tracking history repository.
type TrackingRepo struct{ db *pgxpool.Pool }

// NewTrackingRepo creates a new TrackingRepo.
func NewTrackingRepo(db *pgxpool.Pool) *TrackingRepo { return &TrackingRepo{db: db} }

// ListByTrackingID returns a package's history ordered by timestamp ascending.
func (r *TrackingRepo) ListByTrackingID(ctx context.Context, trackingID string) ([]domain.TrackingEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT tracking_id, package_id, status, location, notes, updated_by, ts
		 FROM tracking_events WHERE tracking_id=$1 ORDER BY ts, id`, trackingID)
	if err != nil {
		return nil, fmt.Errorf("list tracking events %s: %w", trackingID, err)
	}
	defer rows.Close()

	out := make([]domain.TrackingEvent, 0)
	for rows.Next() {
		var ev domain.TrackingEvent
		if err := rows.Scan(&ev.TrackingID, &ev.PackageID, &ev.Status, &ev.Location,
			&ev.Notes, &ev.UpdatedBy, &ev.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
