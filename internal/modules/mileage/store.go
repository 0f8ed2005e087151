// README: Trip log store backed by PostgreSQL (append-only).
package mileage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"claimcipher/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, c Calculation) error {
	m := c.AmountMoney()
	_, err := s.db.Exec(ctx, `
		INSERT INTO mileage_trips (
			id, firm_id, firm_name, free_miles, rate_per_mile,
			point_a, point_b, distance_miles, round_trip,
			base_miles, billable_miles, amount_cents, currency, note, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15
		)`,
		string(c.ID), string(c.Policy.ID), c.Policy.Name, c.Policy.FreeMiles, c.Policy.RatePerMile,
		c.PointA, c.PointB, c.DistanceMiles, c.RoundTrip,
		c.BaseMiles, c.BillableMiles, m.Amount, m.Currency, c.Note, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append trip %s: %w", c.ID, err)
	}
	return nil
}

// List returns the newest trips first.
func (s *Store) List(ctx context.Context, limit int) ([]Calculation, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, firm_id, firm_name, free_miles, rate_per_mile,
		       point_a, point_b, distance_miles, round_trip,
		       base_miles, billable_miles, amount_cents, currency, note, created_at
		FROM mileage_trips
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		var c Calculation
		var m types.Money
		err := rows.Scan(
			&c.ID, &c.Policy.ID, &c.Policy.Name, &c.Policy.FreeMiles, &c.Policy.RatePerMile,
			&c.PointA, &c.PointB, &c.DistanceMiles, &c.RoundTrip,
			&c.BaseMiles, &c.BillableMiles, &m.Amount, &m.Currency, &c.Note, &c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		c.Amount = m.Float()
		out = append(out, c)
	}
	return out, rows.Err()
}
