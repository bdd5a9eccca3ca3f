// Package mongostore implements the account and project stores on MongoDB.
// All roles share the accounts collection; the unique email index is what
// keeps an address from being registered twice under different roles.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const (
	accountsCollection = "accounts"
	projectsCollection = "projects"
)

type Store struct {
	accounts *mongo.Collection
	projects *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		accounts: db.Collection(accountsCollection),
		projects: db.Collection(projectsCollection),
	}
}

// Open connects, reconciles indexes and returns the bundled store.
func Open(ctx context.Context, uri, dbName string, logger *zap.Logger) (*store.Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	db := client.Database(dbName)
	if err := EnsureIndexes(connectCtx, db, logger); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	logger.Info("connected to mongodb", zap.String("database", dbName))

	s := New(db)
	return &store.Store{
		Accounts: s,
		Projects: s,
		PingFn: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		CloseFn: client.Disconnect,
	}, nil
}

// EnsureIndexes is idempotent; problems are aggregated so startup fails with
// the full picture.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	want := map[string][]mongo.IndexModel{
		accountsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetName("uniq_email").SetUnique(true)},
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("role_created")},
			{Keys: bson.D{{Key: "volunteer.ngo_id", Value: 1}}, Options: options.Index().SetName("volunteer_ngo").SetSparse(true)},
		},
		projectsCollection: {
			{Keys: bson.D{{Key: "ngo_id", Value: 1}, {Key: "created_at", Value: -1}}, Options: options.Index().SetName("ngo_created")},
		},
	}

	var problems []string
	for coll, models := range want {
		start := time.Now()
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				problems = append(problems, coll+": cannot create unique index (duplicates present)")
			} else {
				problems = append(problems, coll+": "+err.Error())
			}
			continue
		}
		logger.Info("indexes ensured",
			zap.String("collection", coll),
			zap.Strings("names", names),
			zap.Duration("took", time.Since(start)))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}
