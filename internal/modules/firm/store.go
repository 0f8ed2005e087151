// README: Billing policy store backed by PostgreSQL.
package firm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"claimcipher/internal/types"
)

const uniqueViolation = "23505"

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]Policy, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, free_miles, rate_per_mile, round_trip_default
		FROM billing_policies
		ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()

	var out []Policy
	for rows.Next() {
		var p Policy
		if err := rows.Scan(&p.ID, &p.Name, &p.FreeMiles, &p.RatePerMile, &p.RoundTripDefault); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id types.ID) (Policy, error) {
	var p Policy
	err := s.db.QueryRow(ctx, `
		SELECT id, name, free_miles, rate_per_mile, round_trip_default
		FROM billing_policies
		WHERE id = $1`, string(id),
	).Scan(&p.ID, &p.Name, &p.FreeMiles, &p.RatePerMile, &p.RoundTripDefault)
	if errors.Is(err, pgx.ErrNoRows) {
		return Policy{}, ErrNotFound
	}
	if err != nil {
		return Policy{}, fmt.Errorf("get policy %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) Insert(ctx context.Context, p Policy) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO billing_policies (id, name, free_miles, rate_per_mile, round_trip_default)
		VALUES ($1, $2, $3, $4, $5)`,
		string(p.ID), p.Name, p.FreeMiles, p.RatePerMile, p.RoundTripDefault,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert policy %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, p Policy) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE billing_policies
		SET name = $2, free_miles = $3, rate_per_mile = $4, round_trip_default = $5, updated_at = NOW()
		WHERE id = $1`,
		string(p.ID), p.Name, p.FreeMiles, p.RatePerMile, p.RoundTripDefault,
	)
	if err != nil {
		return fmt.Errorf("update policy %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUnlessLast removes the policy only when at least one other policy remains.
// All rows are locked for the duration so concurrent deletes cannot empty the table.
func (s *Store) DeleteUnlessLast(ctx context.Context, id types.ID) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `SELECT id FROM billing_policies FOR UPDATE`)
	if err != nil {
		return fmt.Errorf("lock policies: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("lock policies: %w", err)
	}

	found := false
	for _, v := range ids {
		if v == string(id) {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}
	if len(ids) <= 1 {
		return ErrLastPolicy
	}

	if _, err := tx.Exec(ctx, `DELETE FROM billing_policies WHERE id = $1`, string(id)); err != nil {
		return fmt.Errorf("delete policy %s: %w", id, err)
	}
	return tx.Commit(ctx)
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM billing_policies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count policies: %w", err)
	}
	return n, nil
}
