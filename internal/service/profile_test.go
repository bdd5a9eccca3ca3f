package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

func TestProfilePicture(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	dir := t.TempDir()
	ps := NewProfileService(f.store, utils.NewFileStorage(dir, "http://api.test"), zap.NewNop())
	a, _ := f.svc.Register(ctx, govInput("g@x.com"))

	url, err := ps.SetPicture(ctx, a, "me.png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("SetPicture: %v", err)
	}
	if !strings.HasPrefix(url, "http://api.test/uploads/profile-pictures/") {
		t.Errorf("url %q", url)
	}
	a, _ = f.store.GetAccountByID(ctx, a.ID)
	first := a.ProfilePictureURL
	if _, err := os.Stat(filepath.Join(dir, first)); err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if v := ps.View(ctx, a); v["profilePictureUrl"] != url {
		t.Errorf("view url %v", v["profilePictureUrl"])
	}

	if _, err := ps.SetPicture(ctx, a, "me2.png", strings.NewReader("more")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, first)); !os.IsNotExist(err) {
		t.Errorf("old picture should be removed, stat err=%v", err)
	}

	a, _ = f.store.GetAccountByID(ctx, a.ID)
	if err := ps.DeletePicture(ctx, a); err != nil {
		t.Fatal(err)
	}
	a, _ = f.store.GetAccountByID(ctx, a.ID)
	if a.ProfilePictureURL != "" {
		t.Error("picture key not cleared")
	}
	wantKind(t, ps.DeletePicture(ctx, a), KindNotFound)
}
