package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/cascade"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateDictionary inserts a dictionary with an empty wordlist list.
func (s *Store) CreateDictionary(ctx context.Context, name string) (domain.ID, error) {
	res, err := s.dicts.InsertOne(ctx, dictDoc{Name: name, Wordlists: []primitive.ObjectID{}})
	if err != nil {
		return "", mapError(err, "dictionary", "")
	}

	oid, err := insertedID(res)
	if err != nil {
		return "", fmt.Errorf("dictionary: %w", err)
	}
	return formatID(oid), nil
}

// GetDictionary returns a dictionary by id or domain.ErrNotFound.
func (s *Store) GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("dictionary %s: %w", id, domain.ErrNotFound)
	}

	var doc dictDoc
	if err := s.dicts.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, mapError(err, "dictionary", id)
	}

	return &domain.Dictionary{ID: formatID(doc.ID), Name: doc.Name}, nil
}

// ListDictionaries returns all dictionaries in insertion order.
func (s *Store) ListDictionaries(ctx context.Context) ([]domain.Dictionary, error) {
	docs, err := findAll[dictDoc](ctx, s.dicts, bson.D{})
	if err != nil {
		return nil, mapError(err, "dictionary", "*")
	}

	dicts := make([]domain.Dictionary, 0, len(docs))
	for _, d := range docs {
		dicts = append(dicts, domain.Dictionary{ID: formatID(d.ID), Name: d.Name})
	}
	return dicts, nil
}

// DeleteDictionary removes a dictionary, its wordlists and their rows.
// Without transactions a failure midway leaves the earlier steps applied and
// the returned error is a *cascade.StepError naming the failed step.
func (s *Store) DeleteDictionary(ctx context.Context, id domain.ID) (bool, error) {
	if _, ok := parseID(id); !ok {
		return false, nil
	}

	var res cascade.Result
	err := s.withTx(ctx, func(ctx context.Context) error {
		var err error
		res, err = cascade.DeleteDictionary(ctx, steps{s}, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete dictionary %s: %w", id, err)
	}

	return res.Deleted, nil
}
