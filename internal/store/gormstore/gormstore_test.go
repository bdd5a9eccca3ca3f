package gormstore

import (
	"testing"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store/storetest"
	"github.com/madhava-poojari/community-portal-api/internal/testutil"
)

func TestGormStore(t *testing.T) {
	dsn := testutil.PostgresURL(t)
	s, err := Open(dsn)
	if err != nil {
		t.Skipf("cannot open postgres: %v", err)
	}
	ctx := testutil.TestContext(t)
	t.Cleanup(func() { _ = s.Close(ctx) })

	db := s.Accounts.(*Store).DB
	db.Exec("TRUNCATE accounts, projects")
	storetest.Run(t, ctx, s)
	db.Exec("TRUNCATE accounts, projects")
}

func TestAccountRowRoundTrip(t *testing.T) {
	a := storetestAccount()
	got := toAccountRow(a).toModel()
	if got.NGO == nil || got.NGO.Organization != "Helping Hands" || got.Volunteer != nil {
		t.Fatalf("unexpected round trip: %+v", got)
	}
	if len(got.NGO.Interests) != 2 {
		t.Errorf("interests lost: %v", got.NGO.Interests)
	}
	if got.Active {
		t.Error("inactive account came back active")
	}
}

func storetestAccount() *models.Account {
	return &models.Account{
		ID:    "a1",
		Email: "NGO@Example.org",
		Role:  models.RoleNGO,
		NGO: &models.NGOProfile{
			Organization: "Helping Hands",
			Interests:    []string{"Education", "Technology"},
		},
	}
}
