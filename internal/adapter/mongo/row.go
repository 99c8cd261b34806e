package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateWordlistRow inserts a row. The wordlist is not checked and the
// (phrase, meaning, wordlist_id) triple is not unique in this store.
func (s *Store) CreateWordlistRow(ctx context.Context, phrase, meaning string, wordlistID domain.ID) (domain.ID, error) {
	wlOID, ok := parseID(wordlistID)
	if !ok {
		return "", fmt.Errorf("wordlist_row: wordlist %s: %w", wordlistID, domain.ErrParentNotFound)
	}

	res, err := s.rows.InsertOne(ctx, rowDoc{Phrase: phrase, Meaning: meaning, WordlistID: wlOID})
	if err != nil {
		return "", mapError(err, "wordlist_row", "")
	}

	oid, err := insertedID(res)
	if err != nil {
		return "", fmt.Errorf("wordlist_row: %w", err)
	}
	return formatID(oid), nil
}

// GetRowsByWordlist returns the rows of a wordlist in insertion order.
func (s *Store) GetRowsByWordlist(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error) {
	oid, ok := parseID(wordlistID)
	if !ok {
		return []domain.WordlistRow{}, nil
	}

	docs, err := findAll[rowDoc](ctx, s.rows, bson.D{{Key: "wordlist_id", Value: oid}})
	if err != nil {
		return nil, mapError(err, "wordlist", wordlistID)
	}

	rows := make([]domain.WordlistRow, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, domain.WordlistRow{
			ID:         formatID(d.ID),
			Phrase:     d.Phrase,
			Meaning:    d.Meaning,
			WordlistID: formatID(d.WordlistID),
		})
	}
	return rows, nil
}

// DeleteWordlistRow removes a single row.
func (s *Store) DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error) {
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}

	res, err := s.rows.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, mapError(err, "wordlist_row", id)
	}
	return res.DeletedCount > 0, nil
}
