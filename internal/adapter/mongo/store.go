// Package mongo implements the dictionary store on MongoDB.
//
// MongoDB has no foreign keys, so deletes of a dictionary or wordlist run
// the multi-step cascade from internal/cascade against the dicts, wordlists
// and wordlist_rows collections. Inserts do not check that the parent
// exists: a row or wordlist pointing at a missing parent is stored as an
// orphan and later removed by SweepOrphans.
package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// Collection names.
const (
	DictsCollection        = "dicts"
	WordlistsCollection    = "wordlists"
	WordlistRowsCollection = "wordlist_rows"
)

type dictDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Wordlists []primitive.ObjectID `bson:"wordlists"`
}

type wordlistDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Name   string             `bson:"name"`
	DictID primitive.ObjectID `bson:"dict_id"`
}

type rowDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Phrase     string             `bson:"phrase"`
	Meaning    string             `bson:"meaning"`
	WordlistID primitive.ObjectID `bson:"wordlist_id"`
}

// Store provides dictionary persistence backed by MongoDB.
type Store struct {
	client       *mongo.Client
	dicts        *mongo.Collection
	wordlists    *mongo.Collection
	rows         *mongo.Collection
	transactions bool
}

// New creates a new Store over the named database. When transactions is
// true every multi-step write runs inside one multi-document transaction,
// which needs a replica set or sharded cluster.
func New(client *mongo.Client, database string, transactions bool) *Store {
	db := client.Database(database)
	return &Store{
		client:       client,
		dicts:        db.Collection(DictsCollection),
		wordlists:    db.Collection(WordlistsCollection),
		rows:         db.Collection(WordlistRowsCollection),
		transactions: transactions,
	}
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// EnsureIndexes creates the parent-reference indexes the cascade and the
// list reads filter on. It is safe to call on every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if _, err := s.wordlists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dict_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create wordlists index: %w", mapError(err, "wordlist", "*"))
	}

	if _, err := s.rows.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "wordlist_id", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create wordlist_rows index: %w", mapError(err, "wordlist_row", "*"))
	}

	return nil
}

// withTx runs fn inside a transaction when the store is configured for
// transactions and directly otherwise.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.transactions {
		return fn(ctx)
	}

	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", mapError(err, "session", ""))
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	return err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// parseID converts a domain.ID into an ObjectID. ok is false for ids that
// cannot exist in this store.
func parseID(id domain.ID) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func formatID(oid primitive.ObjectID) domain.ID {
	return domain.ID(oid.Hex())
}

func insertedID(res *mongo.InsertOneResult) (primitive.ObjectID, error) {
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter any) ([]T, error) {
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
