package mongostore

import (
	"testing"

	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/store/storetest"
	"github.com/madhava-poojari/community-portal-api/internal/testutil"
	"go.uber.org/zap"
)

func TestMongoStore(t *testing.T) {
	db := testutil.SetupMongoDB(t)
	ctx := testutil.TestContext(t)
	if err := EnsureIndexes(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}
	s := New(db)
	storetest.Run(t, ctx, &store.Store{Accounts: s, Projects: s})
}

func TestEnsureIndexes_Idempotent(t *testing.T) {
	db := testutil.SetupMongoDB(t)
	ctx := testutil.TestContext(t)
	for i := 0; i < 2; i++ {
		if err := EnsureIndexes(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
}
