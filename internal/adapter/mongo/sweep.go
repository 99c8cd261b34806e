package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// SweepResult counts the orphans a sweep found or removed.
type SweepResult struct {
	Wordlists int64
	Rows      int64
}

// SweepOrphans removes wordlists whose dictionary is gone, their rows, and
// rows whose wordlist is gone. It completes cascades that stopped midway and
// cleans up orphans accepted on insert. With dryRun it only counts.
func (s *Store) SweepOrphans(ctx context.Context, log *slog.Logger, dryRun bool) (SweepResult, error) {
	var res SweepResult

	orphanLists, err := s.orphanIDs(ctx, s.wordlists, "dict_id", DictsCollection)
	if err != nil {
		return res, fmt.Errorf("sweep: find orphan wordlists: %w", err)
	}
	log.InfoContext(ctx, "sweep: orphan wordlists found", slog.Int("count", len(orphanLists)))

	st := steps{s}
	if dryRun {
		res.Wordlists = int64(len(orphanLists))
		if len(orphanLists) > 0 {
			n, err := s.rows.CountDocuments(ctx,
				bson.D{{Key: "wordlist_id", Value: bson.D{{Key: "$in", Value: parseIDs(orphanLists)}}}})
			if err != nil {
				return res, fmt.Errorf("sweep: count rows: %w", mapError(err, "wordlist_row", "*"))
			}
			res.Rows = n
		}
	} else if len(orphanLists) > 0 {
		if res.Rows, err = st.DeleteRowsByWordlists(ctx, orphanLists); err != nil {
			return res, fmt.Errorf("sweep: delete rows of orphan wordlists: %w", err)
		}
		if res.Wordlists, err = st.DeleteWordlists(ctx, orphanLists); err != nil {
			return res, fmt.Errorf("sweep: delete orphan wordlists: %w", err)
		}
	}

	orphanRows, err := s.orphanIDs(ctx, s.rows, "wordlist_id", WordlistsCollection)
	if err != nil {
		return res, fmt.Errorf("sweep: find orphan rows: %w", err)
	}
	log.InfoContext(ctx, "sweep: orphan rows found", slog.Int("count", len(orphanRows)))

	if dryRun || len(orphanRows) == 0 {
		res.Rows += int64(len(orphanRows))
		return res, nil
	}

	del, err := s.rows.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: parseIDs(orphanRows)}}}})
	if err != nil {
		return res, fmt.Errorf("sweep: delete orphan rows: %w", mapError(err, "wordlist_row", "*"))
	}
	res.Rows += del.DeletedCount

	return res, nil
}

// orphanIDs returns the ids of documents in coll whose field does not match
// any _id in the parent collection.
func (s *Store) orphanIDs(ctx context.Context, coll *mongo.Collection, field, parent string) ([]domain.ID, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: parent},
			{Key: "localField", Value: field},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "parent"},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "parent", Value: bson.D{{Key: "$size", Value: 0}}}}}},
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError(err, coll.Name(), "*")
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(err, coll.Name(), "*")
	}

	ids := make([]domain.ID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, formatID(d.ID))
	}
	return ids, nil
}
