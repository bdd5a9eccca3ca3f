// Package testutil holds helpers shared by package tests that need a live
// database. Tests skip when the matching environment variable is unset.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContext returns a context bounded to a few seconds.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// MongoURL returns MONGO_TEST_URL or skips the test.
func MongoURL(t *testing.T) string {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL not set")
	}
	return uri
}

// PostgresURL returns POSTGRES_TEST_URL or skips the test.
func PostgresURL(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	return dsn
}

// SetupMongoDB connects to MONGO_TEST_URL and returns a throwaway database
// that is dropped when the test ends.
func SetupMongoDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := MongoURL(t)
	ctx := TestContext(t)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Skipf("cannot reach mongo at %s: %v", uri, err)
	}
	db := client.Database(UniqueName("portal_test"))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

// UniqueName returns prefix plus a short random suffix.
func UniqueName(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}
