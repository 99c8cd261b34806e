package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/cascade"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// steps implements cascade.Steps over the store's collections. Every method
// is a single driver call.
type steps struct {
	s *Store
}

var _ cascade.Steps = steps{}

func (st steps) DictionaryWordlistIDs(ctx context.Context, dictID domain.ID) ([]domain.ID, bool, error) {
	oid, ok := parseID(dictID)
	if !ok {
		return nil, false, nil
	}

	var doc dictDoc
	err := st.s.dicts.FindOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		options.FindOne().SetProjection(bson.D{{Key: "wordlists", Value: 1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapError(err, "dictionary", dictID)
	}

	ids := make([]domain.ID, 0, len(doc.Wordlists))
	for _, wl := range doc.Wordlists {
		ids = append(ids, formatID(wl))
	}
	return ids, true, nil
}

func (st steps) DeleteRowsByWordlists(ctx context.Context, wordlistIDs []domain.ID) (int64, error) {
	oids := parseIDs(wordlistIDs)
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := st.s.rows.DeleteMany(ctx, bson.D{{Key: "wordlist_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return 0, mapError(err, "wordlist_row", "*")
	}
	return res.DeletedCount, nil
}

func (st steps) DeleteWordlists(ctx context.Context, wordlistIDs []domain.ID) (int64, error) {
	oids := parseIDs(wordlistIDs)
	if len(oids) == 0 {
		return 0, nil
	}

	res, err := st.s.wordlists.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return 0, mapError(err, "wordlist", "*")
	}
	return res.DeletedCount, nil
}

func (st steps) DeleteDictionary(ctx context.Context, dictID domain.ID) (bool, error) {
	oid, ok := parseID(dictID)
	if !ok {
		return false, nil
	}

	res, err := st.s.dicts.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, mapError(err, "dictionary", dictID)
	}
	return res.DeletedCount > 0, nil
}

func (st steps) PullWordlist(ctx context.Context, wordlistID domain.ID) error {
	oid, ok := parseID(wordlistID)
	if !ok {
		return nil
	}

	_, err := st.s.dicts.UpdateMany(ctx,
		bson.D{{Key: "wordlists", Value: oid}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "wordlists", Value: oid}}}},
	)
	if err != nil {
		return mapError(err, "wordlist", wordlistID)
	}
	return nil
}

func (st steps) DeleteWordlist(ctx context.Context, wordlistID domain.ID) (bool, error) {
	oid, ok := parseID(wordlistID)
	if !ok {
		return false, nil
	}

	res, err := st.s.wordlists.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, mapError(err, "wordlist", wordlistID)
	}
	return res.DeletedCount > 0, nil
}

func parseIDs(ids []domain.ID) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			oids = append(oids, oid)
		}
	}
	return oids
}
