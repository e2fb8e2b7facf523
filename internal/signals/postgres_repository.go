package signals

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL signal repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves the stored signal for a directed pair and cabin.
func (r *PostgresRepository) Get(ctx context.Context, from, to, cabin string) (SegmentSignal, error) {
	query := `
		SELECT origin, destination, carrier, status, cost_usd, checked_at
		FROM segment_signals
		WHERE origin = $1 AND destination = $2 AND cabin = $3
	`

	var sig SegmentSignal
	err := r.pool.QueryRow(ctx, query, from, to, cabin).Scan(
		&sig.From,
		&sig.To,
		&sig.Carrier,
		&sig.Status,
		&sig.CostUSD,
		&sig.CheckedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SegmentSignal{}, ErrNotFound
		}
		return SegmentSignal{}, err
	}

	return sig, nil
}

// Put creates or replaces the stored signal for its directed pair.
func (r *PostgresRepository) Put(ctx context.Context, cabin string, sig SegmentSignal) error {
	query := `
		INSERT INTO segment_signals (origin, destination, cabin, carrier, status, cost_usd, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (origin, destination, cabin) DO UPDATE SET
			carrier = EXCLUDED.carrier,
			status = EXCLUDED.status,
			cost_usd = EXCLUDED.cost_usd,
			checked_at = EXCLUDED.checked_at
	`

	checkedAt := sig.CheckedAt
	if checkedAt.IsZero() {
		checkedAt = time.Now()
	}

	_, err := r.pool.Exec(ctx, query, sig.From, sig.To, cabin, sig.Carrier, sig.Status, sig.CostUSD, checkedAt)
	return err
}

// Prune removes signals checked more than the retention window ago.
func (r *PostgresRepository) Prune(ctx context.Context, olderThanDays int) (int, error) {
	query := `DELETE FROM segment_signals WHERE checked_at < $1`

	tag, err := r.pool.Exec(ctx, query, time.Now().AddDate(0, 0, -olderThanDays))
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
