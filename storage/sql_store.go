package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phish-ratings/models"
)

const batchSize = 50

// SQLStore persists shows through database/sql. The dialect decides the
// upsert syntax and placeholder style.
type SQLStore struct {
	db  *sql.DB
	d   dialect
	now func() time.Time
}

func newSQLStore(ctx context.Context, db *sql.DB, d dialect) (*SQLStore, error) {
	s := &SQLStore{db: db, d: d, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: migrate: %w", d.name, err)
	}
	return s, nil
}

func (s *SQLStore) migrate(ctx context.Context) error {
	for _, stmt := range s.d.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Begin(ctx context.Context) (ShowTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", s.d.name, err)
	}
	return &sqlTx{tx: tx, store: s}, nil
}

func (s *SQLStore) ShowsForYear(ctx context.Context, year int) ([]models.Show, error) {
	rows, err := s.db.QueryContext(ctx, s.d.showsForYearQuery(), year)
	if err != nil {
		return nil, fmt.Errorf("%s: shows for year %d: %w", s.d.name, year, err)
	}
	defer rows.Close()

	var shows []models.Show
	for rows.Next() {
		var (
			show                 models.Show
			city, state, country sql.NullString
		)
		if err := rows.Scan(
			&show.ShowID, &show.Date, &show.Venue, &city, &state, &country,
			&show.Rating, &show.Year,
		); err != nil {
			return nil, fmt.Errorf("%s: scan row: %w", s.d.name, err)
		}
		show.City = fromNull(city)
		show.State = fromNull(state)
		show.Country = fromNull(country)
		shows = append(shows, show)
	}
	return shows, rows.Err()
}

func (s *SQLStore) DistinctYears(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, distinctYearsQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: distinct years: %w", s.d.name, err)
	}
	defer rows.Close()

	years := []int{}
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("%s: scan year: %w", s.d.name, err)
		}
		years = append(years, year)
	}
	return years, rows.Err()
}

func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM shows").Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: count: %w", s.d.name, err)
	}
	return n, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

type sqlTx struct {
	tx    *sql.Tx
	store *SQLStore
}

func (t *sqlTx) Upsert(ctx context.Context, shows []models.Show) error {
	if len(shows) == 0 {
		return nil
	}

	updatedAt := t.store.now().UTC().Format(time.RFC3339Nano)
	shows = lastWins(shows)

	for i := 0; i < len(shows); i += batchSize {
		end := i + batchSize
		if end > len(shows) {
			end = len(shows)
		}
		if err := t.insertBatch(ctx, shows[i:end], updatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (t *sqlTx) insertBatch(ctx context.Context, batch []models.Show, updatedAt string) error {
	args := make([]interface{}, 0, len(batch)*showColumnCount)
	for _, s := range batch {
		args = append(args,
			s.ShowID, s.Date, s.Venue,
			toNull(s.City), toNull(s.State), toNull(s.Country),
			s.Rating, s.Year, updatedAt)
	}

	if _, err := t.tx.ExecContext(ctx, t.store.d.upsertQuery(len(batch)), args...); err != nil {
		return fmt.Errorf("%s: upsert: %w", t.store.d.name, err)
	}
	return nil
}

func (t *sqlTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", t.store.d.name, err)
	}
	return nil
}

func (t *sqlTx) Rollback() error {
	return t.tx.Rollback()
}

// lastWins drops earlier occurrences of a repeated show id so a single
// statement never touches the same row twice.
func lastWins(shows []models.Show) []models.Show {
	last := make(map[string]int, len(shows))
	for i, s := range shows {
		last[s.ShowID] = i
	}
	if len(last) == len(shows) {
		return shows
	}

	out := make([]models.Show, 0, len(last))
	for i, s := range shows {
		if last[s.ShowID] == i {
			out = append(out, s)
		}
	}
	return out
}

func toNull(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
