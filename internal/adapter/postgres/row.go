package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateWordlistRow inserts a row into a wordlist.
// Returns domain.ErrParentNotFound if the wordlist does not exist and
// domain.ErrAlreadyExists if (phrase, meaning, wordlist_id) is taken.
func (s *Store) CreateWordlistRow(ctx context.Context, phrase, meaning string, wordlistID domain.ID) (domain.ID, error) {
	key, ok := parseID(wordlistID)
	if !ok {
		return "", fmt.Errorf("wordlist_row: wordlist %s: %w", wordlistID, domain.ErrParentNotFound)
	}

	return s.insertReturningID(ctx,
		psql.Insert("wordlist_rows").Columns("phrase", "meaning", "wordlist_id").Values(phrase, meaning, key),
		"wordlist_row",
	)
}

// GetRowsByWordlist returns the rows of a wordlist ordered by id.
func (s *Store) GetRowsByWordlist(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error) {
	key, ok := parseID(wordlistID)
	if !ok {
		return []domain.WordlistRow{}, nil
	}

	q := psql.Select("id", "phrase", "meaning", "wordlist_id").
		From("wordlist_rows").
		Where(sq.Eq{"wordlist_id": key}).
		OrderBy("id")

	rows, err := collect(ctx, s, q, scanRow)
	if err != nil {
		return nil, mapError(err, "wordlist", wordlistID)
	}

	return rows, nil
}

// DeleteWordlistRow removes a single row.
func (s *Store) DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error) {
	return s.deleteByID(ctx, "wordlist_rows", "wordlist_row", id)
}

func scanRow(rows pgx.Rows) (domain.WordlistRow, error) {
	var (
		r              domain.WordlistRow
		id, wordlistID int64
	)
	if err := rows.Scan(&id, &r.Phrase, &r.Meaning, &wordlistID); err != nil {
		return domain.WordlistRow{}, err
	}
	r.ID = formatID(id)
	r.WordlistID = formatID(wordlistID)
	return r, nil
}
