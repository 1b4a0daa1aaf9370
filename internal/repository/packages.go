package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/domain"
)

// PackageRepo represents package repository.
type PackageRepo struct{ db *pgxpool.Pool }

// NewPackageRepo creates a new PackageRepo.
func NewPackageRepo(db *pgxpool.Pool) *PackageRepo { return &PackageRepo{db: db} }

// PackageTx defines the operations available inside a package transaction.
type PackageTx interface {
	GetByTrackingIDForUpdate(ctx context.Context, trackingID string) (*domain.Package, error)
	UpdateStatus(ctx context.Context, packageID string, status domain.PackageStatus) error
	AppendEvent(ctx context.Context, ev domain.TrackingEvent) error
}

const packageColumns = `id, tracking_id, user_id, sender, receiver, details,
	service_type, pickup_date, distance_km, price, status, created_at, estimated_delivery`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPackage(row rowScanner) (*domain.Package, error) {
	var (
		p                               domain.Package
		senderRaw, receiverRaw, detailsRaw []byte
	)
	err := row.Scan(&p.ID, &p.TrackingID, &p.UserID, &senderRaw, &receiverRaw, &detailsRaw,
		&p.ServiceType, &p.PickupDate, &p.DistanceKM, &p.Price, &p.Status,
		&p.CreatedAt, &p.EstimatedDelivery)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(senderRaw, &p.Sender); err != nil {
		return nil, fmt.Errorf("decode sender: %w", err)
	}
	if err := json.Unmarshal(receiverRaw, &p.Receiver); err != nil {
		return nil, fmt.Errorf("decode receiver: %w", err)
	}
	if err := json.Unmarshal(detailsRaw, &p.Details); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	return &p, nil
}

// CreateWithEvent inserts a package together with its initial tracking event
// in one transaction. Returns apperr.ErrConflict if the tracking_id is taken.
func (r *PackageRepo) CreateWithEvent(ctx context.Context, p *domain.Package, ev domain.TrackingEvent) error {
	senderRaw, err := json.Marshal(p.Sender)
	if err != nil {
		return fmt.Errorf("encode sender: %w", err)
	}
	receiverRaw, err := json.Marshal(p.Receiver)
	if err != nil {
		return fmt.Errorf("encode receiver: %w", err)
	}
	detailsRaw, err := json.Marshal(p.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create package: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO packages(`+packageColumns+`)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.TrackingID, p.UserID, senderRaw, receiverRaw, detailsRaw,
		p.ServiceType, p.PickupDate, p.DistanceKM, p.Price, p.Status,
		p.CreatedAt, p.EstimatedDelivery)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create package: %w", err)
	}

	if err := insertEvent(ctx, tx, ev); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// GetByTrackingID - returns a package by its public tracking code, or nil.
func (r *PackageRepo) GetByTrackingID(ctx context.Context, trackingID string) (*domain.Package, error) {
	p, err := scanPackage(r.db.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE tracking_id=$1`, trackingID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package %s: %w", trackingID, err)
	}
	return p, nil
}

// ListByUser returns a user's packages, newest first.
func (r *PackageRepo) ListByUser(ctx context.Context, userID string) ([]domain.Package, error) {
	return r.list(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE user_id=$1 ORDER BY created_at DESC`, userID)
}

// ListAll returns every package, newest first.
func (r *PackageRepo) ListAll(ctx context.Context) ([]domain.Package, error) {
	return r.list(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY created_at DESC`)
}

func (r *PackageRepo) list(ctx context.Context, q string, args ...any) ([]domain.Package, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Package, 0)
	for rows.Next() {
		p, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Stats returns the admin dashboard counters. Pending means any status other
// than delivered; total users counts customers only.
func (r *PackageRepo) Stats(ctx context.Context) (domain.Stats, error) {
	var s domain.Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = $1),
			count(*) FILTER (WHERE status <> $1)
		FROM packages
	`, domain.StatusDelivered).Scan(&s.TotalPackages, &s.DeliveredPackages, &s.PendingPackages)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("package stats: %w", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE role=$1`, domain.RoleCustomer,
	).Scan(&s.TotalUsers)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("user stats: %w", err)
	}
	return s, nil
}

// WithTx opens a transaction and executes fn within it.
func (r *PackageRepo) WithTx(ctx context.Context, fn func(tx PackageTx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(packageTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type packageTx struct{ tx pgx.Tx }

// GetByTrackingIDForUpdate locks the package row for the rest of the transaction.
func (t packageTx) GetByTrackingIDForUpdate(ctx context.Context, trackingID string) (*domain.Package, error) {
	p, err := scanPackage(t.tx.QueryRow(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE tracking_id=$1 FOR UPDATE`, trackingID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get package %s for update: %w", trackingID, err)
	}
	return p, nil
}

// UpdateStatus moves a package to the given status.
func (t packageTx) UpdateStatus(ctx context.Context, packageID string, status domain.PackageStatus) error {
	_, err := t.tx.Exec(ctx,
		`UPDATE packages SET status=$2 WHERE id=$1`, packageID, status)
	if err != nil {
		return fmt.Errorf("update package %s status: %w", packageID, err)
	}
	return nil
}

// AppendEvent appends one entry to the package's tracking history.
func (t packageTx) AppendEvent(ctx context.Context, ev domain.TrackingEvent) error {
	return insertEvent(ctx, t.tx, ev)
}

func insertEvent(ctx context.Context, tx pgx.Tx, ev domain.TrackingEvent) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO tracking_events(tracking_id, package_id, status, location, notes, updated_by, ts)
		 VALUES($1,$2,$3,$4,$5,$6,$7)`,
		ev.TrackingID, ev.PackageID, ev.Status, ev.Location, ev.Notes, ev.UpdatedBy, ev.Timestamp)
	if err != nil {
		return fmt.Errorf("append tracking event: %w", err)
	}
	return nil
}
