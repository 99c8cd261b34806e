package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/cascade"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateWordlist inserts a wordlist and adds its id to the parent's
// wordlists list. A missing parent is not an error; the wordlist is stored
// as an orphan.
func (s *Store) CreateWordlist(ctx context.Context, name string, dictID domain.ID) (domain.ID, error) {
	dictOID, ok := parseID(dictID)
	if !ok {
		return "", fmt.Errorf("wordlist: dictionary %s: %w", dictID, domain.ErrParentNotFound)
	}

	var id domain.ID
	err := s.withTx(ctx, func(ctx context.Context) error {
		res, err := s.wordlists.InsertOne(ctx, wordlistDoc{Name: name, DictID: dictOID})
		if err != nil {
			return mapError(err, "wordlist", "")
		}
		oid, err := insertedID(res)
		if err != nil {
			return fmt.Errorf("wordlist: %w", err)
		}

		_, err = s.dicts.UpdateOne(ctx,
			bson.D{{Key: "_id", Value: dictOID}},
			bson.D{{Key: "$addToSet", Value: bson.D{{Key: "wordlists", Value: oid}}}},
		)
		if err != nil {
			return mapError(err, "dictionary", dictID)
		}

		id = formatID(oid)
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// GetWordlistsByDict returns the wordlists whose dict_id is dictID.
func (s *Store) GetWordlistsByDict(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error) {
	oid, ok := parseID(dictID)
	if !ok {
		return []domain.Wordlist{}, nil
	}

	docs, err := findAll[wordlistDoc](ctx, s.wordlists, bson.D{{Key: "dict_id", Value: oid}})
	if err != nil {
		return nil, mapError(err, "dictionary", dictID)
	}

	lists := make([]domain.Wordlist, 0, len(docs))
	for _, d := range docs {
		lists = append(lists, domain.Wordlist{ID: formatID(d.ID), Name: d.Name, DictID: formatID(d.DictID)})
	}
	return lists, nil
}

// DeleteWordlist removes a wordlist and its rows and pulls its id from the
// parent dictionary.
func (s *Store) DeleteWordlist(ctx context.Context, id domain.ID) (bool, error) {
	if _, ok := parseID(id); !ok {
		return false, nil
	}

	var res cascade.Result
	err := s.withTx(ctx, func(ctx context.Context) error {
		var err error
		res, err = cascade.DeleteWordlist(ctx, steps{s}, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete wordlist %s: %w", id, err)
	}

	return res.Deleted, nil
}
