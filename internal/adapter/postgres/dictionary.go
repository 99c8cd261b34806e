package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateDictionary inserts a dictionary and returns its id.
// Returns domain.ErrAlreadyExists if the name is taken.
func (s *Store) CreateDictionary(ctx context.Context, name string) (domain.ID, error) {
	return s.insertReturningID(ctx, psql.Insert("dicts").Columns("name").Values(name), "dictionary")
}

// GetDictionary returns a dictionary by id or domain.ErrNotFound.
func (s *Store) GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("dictionary %s: %w", id, domain.ErrNotFound)
	}

	query, args, err := psql.Select("id", "name").From("dicts").Where(sq.Eq{"id": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select dictionary: %w", err)
	}

	var (
		dbID int64
		d    domain.Dictionary
	)
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&dbID, &d.Name); err != nil {
		return nil, mapError(err, "dictionary", id)
	}
	d.ID = formatID(dbID)

	return &d, nil
}

// ListDictionaries returns all dictionaries ordered by id.
func (s *Store) ListDictionaries(ctx context.Context) ([]domain.Dictionary, error) {
	q := psql.Select("id", "name").From("dicts").OrderBy("id")

	dicts, err := collect(ctx, s, q, scanDictionary)
	if err != nil {
		return nil, mapError(err, "dictionary", "*")
	}

	return dicts, nil
}

// DeleteDictionary removes a dictionary. The schema cascades the delete to
// its wordlists and their rows in the same statement.
func (s *Store) DeleteDictionary(ctx context.Context, id domain.ID) (bool, error) {
	return s.deleteByID(ctx, "dicts", "dictionary", id)
}

func scanDictionary(rows pgx.Rows) (domain.Dictionary, error) {
	var (
		id   int64
		name string
	)
	if err := rows.Scan(&id, &name); err != nil {
		return domain.Dictionary{}, err
	}
	return domain.Dictionary{ID: formatID(id), Name: name}, nil
}
