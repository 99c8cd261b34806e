package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateWordlist inserts a wordlist under dictID.
// Returns domain.ErrParentNotFound if the dictionary does not exist and
// domain.ErrAlreadyExists if the name is taken.
func (s *Store) CreateWordlist(ctx context.Context, name string, dictID domain.ID) (domain.ID, error) {
	key, ok := parseID(dictID)
	if !ok {
		return "", fmt.Errorf("wordlist: dictionary %s: %w", dictID, domain.ErrParentNotFound)
	}

	return s.insertReturningID(ctx,
		psql.Insert("wordlists").Columns("name", "dict_id").Values(name, key),
		"wordlist",
	)
}

// GetWordlistsByDict returns the wordlists of a dictionary ordered by id.
// Returns an empty slice (not nil) for unknown dictionaries.
func (s *Store) GetWordlistsByDict(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error) {
	key, ok := parseID(dictID)
	if !ok {
		return []domain.Wordlist{}, nil
	}

	q := psql.Select("id", "name", "dict_id").
		From("wordlists").
		Where(sq.Eq{"dict_id": key}).
		OrderBy("id")

	lists, err := collect(ctx, s, q, scanWordlist)
	if err != nil {
		return nil, mapError(err, "dictionary", dictID)
	}

	return lists, nil
}

// DeleteWordlist removes a wordlist; its rows go with it via ON DELETE CASCADE.
func (s *Store) DeleteWordlist(ctx context.Context, id domain.ID) (bool, error) {
	return s.deleteByID(ctx, "wordlists", "wordlist", id)
}

func scanWordlist(rows pgx.Rows) (domain.Wordlist, error) {
	var (
		id, dictID int64
		name       string
	)
	if err := rows.Scan(&id, &name, &dictID); err != nil {
		return domain.Wordlist{}, err
	}
	return domain.Wordlist{ID: formatID(id), Name: name, DictID: formatID(dictID)}, nil
}
