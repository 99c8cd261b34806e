// Package testhelper starts a throwaway MongoDB for integration tests.
package testhelper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	once      sync.Once
	sharedURI string
	initErr   error
)

// SetupTestClient starts a shared single-node replica set (once per test
// binary) and returns a client connected to it together with a database
// name unique to the test. The database is dropped and the client
// disconnected via t.Cleanup.
//
// The replica set allows multi-document transactions.
func SetupTestClient(t *testing.T) (*mongo.Client, string) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}

	once.Do(func() {
		sharedURI, initErr = startReplicaSet()
	})
	if initErr != nil {
		t.Fatalf("testhelper: failed to setup mongo: %v", initErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(sharedURI))
	if err != nil {
		t.Fatalf("testhelper: connect: %v", err)
	}

	database := "test_" + uuid.NewString()[:8]

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Database(database).Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return client, database
}

// URI returns the connection string of the shared container.
// SetupTestClient must have been called first.
func URI() string {
	return sharedURI
}

func startReplicaSet() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
		WaitingFor: wait.ForLog("Waiting for connections").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}

	code, _, err := container.Exec(ctx, []string{
		"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})",
	})
	if err != nil {
		return "", fmt.Errorf("rs.initiate: %w", err)
	}
	if code != 0 {
		return "", fmt.Errorf("rs.initiate: exit code %d", code)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "27017")
	if err != nil {
		return "", fmt.Errorf("get mapped port: %w", err)
	}

	uri := fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port())

	if err := waitForPrimary(ctx, uri); err != nil {
		return "", err
	}

	return uri, nil
}

// waitForPrimary polls until the node has been elected primary.
func waitForPrimary(ctx context.Context, uri string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Disconnect(ctx)

	for {
		var hello struct {
			IsWritablePrimary bool `bson:"isWritablePrimary"`
		}
		err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello)
		if err == nil && hello.IsWritablePrimary {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for primary: %w", ctx.Err())
		case <-time.After(250 * time.Millisecond):
		}
	}
}
