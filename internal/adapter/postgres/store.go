// Package postgres implements the dictionary store on PostgreSQL.
//
// Referential integrity is declarative: wordlists and wordlist_rows carry
// ON DELETE CASCADE foreign keys, so deleting a parent is a single DELETE
// and the server removes dependents in the same statement.
package postgres

import (
	"context"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store provides dictionary persistence backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseID converts a domain.ID into a BIGSERIAL key. ok is false for ids
// that cannot exist in this store.
func parseID(id domain.ID) (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func formatID(n int64) domain.ID {
	return domain.ID(strconv.FormatInt(n, 10))
}

// insertReturningID runs an INSERT ... RETURNING id.
func (s *Store) insertReturningID(ctx context.Context, q sq.InsertBuilder, entity string) (domain.ID, error) {
	query, args, err := q.Suffix("RETURNING id").ToSql()
	if err != nil {
		return "", fmt.Errorf("build insert %s: %w", entity, err)
	}

	var id int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", mapError(err, entity, "")
	}

	return formatID(id), nil
}

// deleteByID runs DELETE FROM table WHERE id = $1 and reports whether a row
// was removed. Unknown ids are not an error.
func (s *Store) deleteByID(ctx context.Context, table, entity string, id domain.ID) (bool, error) {
	key, ok := parseID(id)
	if !ok {
		return false, nil
	}

	query, args, err := psql.Delete(table).Where(sq.Eq{"id": key}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete %s: %w", entity, err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, mapError(err, entity, id)
	}

	return tag.RowsAffected() > 0, nil
}

// collect runs a SELECT and scans every row with scan.
func collect[T any](ctx context.Context, s *Store, q sq.SelectBuilder, scan func(pgx.Rows) (T, error)) ([]T, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
