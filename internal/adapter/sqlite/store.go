// Package sqlite implements the dictionary store on an embedded SQLite
// database. Like the PostgreSQL store it relies on ON DELETE CASCADE
// foreign keys, so parent deletes are a single statement.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// Store provides dictionary persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store over a database opened with Open.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Dictionaries
// ---------------------------------------------------------------------------

// CreateDictionary inserts a dictionary and returns its id.
func (s *Store) CreateDictionary(ctx context.Context, name string) (domain.ID, error) {
	return s.insert(ctx, sq.Insert("dicts").Columns("name").Values(name), "dictionary")
}

// GetDictionary returns a dictionary by id or domain.ErrNotFound.
func (s *Store) GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("dictionary %s: %w", id, domain.ErrNotFound)
	}

	var (
		dbID int64
		d    domain.Dictionary
	)
	err := sq.Select("id", "name").From("dicts").Where(sq.Eq{"id": key}).
		RunWith(s.db).QueryRowContext(ctx).Scan(&dbID, &d.Name)
	if err != nil {
		return nil, mapError(err, "dictionary", id)
	}
	d.ID = formatID(dbID)

	return &d, nil
}

// ListDictionaries returns all dictionaries ordered by id.
func (s *Store) ListDictionaries(ctx context.Context) ([]domain.Dictionary, error) {
	q := sq.Select("id", "name").From("dicts").OrderBy("id")

	dicts, err := collect(ctx, s, q, func(rows *sql.Rows) (domain.Dictionary, error) {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return domain.Dictionary{}, err
		}
		return domain.Dictionary{ID: formatID(id), Name: name}, nil
	})
	if err != nil {
		return nil, mapError(err, "dictionary", "*")
	}

	return dicts, nil
}

// DeleteDictionary removes a dictionary together with its wordlists and
// their rows.
func (s *Store) DeleteDictionary(ctx context.Context, id domain.ID) (bool, error) {
	return s.deleteByID(ctx, "dicts", "dictionary", id)
}

// ---------------------------------------------------------------------------
// Wordlists
// ---------------------------------------------------------------------------

// CreateWordlist inserts a wordlist under dictID.
func (s *Store) CreateWordlist(ctx context.Context, name string, dictID domain.ID) (domain.ID, error) {
	key, ok := parseID(dictID)
	if !ok {
		return "", fmt.Errorf("wordlist: dictionary %s: %w", dictID, domain.ErrParentNotFound)
	}

	return s.insert(ctx, sq.Insert("wordlists").Columns("name", "dict_id").Values(name, key), "wordlist")
}

// GetWordlistsByDict returns the wordlists of a dictionary ordered by id.
func (s *Store) GetWordlistsByDict(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error) {
	key, ok := parseID(dictID)
	if !ok {
		return []domain.Wordlist{}, nil
	}

	q := sq.Select("id", "name", "dict_id").From("wordlists").Where(sq.Eq{"dict_id": key}).OrderBy("id")

	lists, err := collect(ctx, s, q, func(rows *sql.Rows) (domain.Wordlist, error) {
		var (
			id, parent int64
			name       string
		)
		if err := rows.Scan(&id, &name, &parent); err != nil {
			return domain.Wordlist{}, err
		}
		return domain.Wordlist{ID: formatID(id), Name: name, DictID: formatID(parent)}, nil
	})
	if err != nil {
		return nil, mapError(err, "dictionary", dictID)
	}

	return lists, nil
}

// DeleteWordlist removes a wordlist and its rows.
func (s *Store) DeleteWordlist(ctx context.Context, id domain.ID) (bool, error) {
	return s.deleteByID(ctx, "wordlists", "wordlist", id)
}

// ---------------------------------------------------------------------------
// Rows
// ---------------------------------------------------------------------------

// CreateWordlistRow inserts a row into a wordlist.
func (s *Store) CreateWordlistRow(ctx context.Context, phrase, meaning string, wordlistID domain.ID) (domain.ID, error) {
	key, ok := parseID(wordlistID)
	if !ok {
		return "", fmt.Errorf("wordlist_row: wordlist %s: %w", wordlistID, domain.ErrParentNotFound)
	}

	return s.insert(ctx,
		sq.Insert("wordlist_rows").Columns("phrase", "meaning", "wordlist_id").Values(phrase, meaning, key),
		"wordlist_row",
	)
}

// GetRowsByWordlist returns the rows of a wordlist ordered by id.
func (s *Store) GetRowsByWordlist(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error) {
	key, ok := parseID(wordlistID)
	if !ok {
		return []domain.WordlistRow{}, nil
	}

	q := sq.Select("id", "phrase", "meaning", "wordlist_id").
		From("wordlist_rows").
		Where(sq.Eq{"wordlist_id": key}).
		OrderBy("id")

	rows, err := collect(ctx, s, q, func(rows *sql.Rows) (domain.WordlistRow, error) {
		var (
			id, parent      int64
			phrase, meaning string
		)
		if err := rows.Scan(&id, &phrase, &meaning, &parent); err != nil {
			return domain.WordlistRow{}, err
		}
		return domain.WordlistRow{ID: formatID(id), Phrase: phrase, Meaning: meaning, WordlistID: formatID(parent)}, nil
	})
	if err != nil {
		return nil, mapError(err, "wordlist", wordlistID)
	}

	return rows, nil
}

// DeleteWordlistRow removes a single row.
func (s *Store) DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error) {
	return s.deleteByID(ctx, "wordlist_rows", "wordlist_row", id)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

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

func (s *Store) insert(ctx context.Context, q sq.InsertBuilder, entity string) (domain.ID, error) {
	res, err := q.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return "", mapError(err, entity, "")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("%s: last insert id: %w", entity, err)
	}

	return formatID(id), nil
}

func (s *Store) deleteByID(ctx context.Context, table, entity string, id domain.ID) (bool, error) {
	key, ok := parseID(id)
	if !ok {
		return false, nil
	}

	res, err := sq.Delete(table).Where(sq.Eq{"id": key}).RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return false, mapError(err, entity, id)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s %s: rows affected: %w", entity, id, err)
	}

	return n > 0, nil
}

func collect[T any](ctx context.Context, s *Store, q sq.SelectBuilder, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := q.RunWith(s.db).QueryContext(ctx)
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
