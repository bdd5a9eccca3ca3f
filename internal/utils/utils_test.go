package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Abcdef12", 4)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Abcdef12" {
		t.Fatal("hash must not equal plaintext")
	}

	ok, err := ComparePasswordAndHash("Abcdef12", hash)
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = ComparePasswordAndHash("wrong", hash)
	if err != nil || ok {
		t.Fatalf("expected clean mismatch, got ok=%v err=%v", ok, err)
	}
	if _, err := ComparePasswordAndHash("x", "not-a-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}
}

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONResponse(rec, http.StatusCreated, true, "done", Fields{"token": "abc"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["success"] != true || body["message"] != "done" || body["token"] != "abc" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestFileStorage_SaveDelete(t *testing.T) {
	dir := t.TempDir()
	fs := NewFileStorage(dir, "http://localhost:8080/")
	ctx := context.Background()

	key, err := fs.SaveFile(ctx, "profile-pictures", "me.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	if !strings.HasPrefix(key, "profile-pictures/") || !strings.HasSuffix(key, ".png") {
		t.Errorf("unexpected key %q", key)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(key))); err != nil {
		t.Fatalf("file not written: %v", err)
	}

	url, _ := fs.URL(ctx, key)
	if url != "http://localhost:8080/uploads/"+key {
		t.Errorf("unexpected url %q", url)
	}

	if err := fs.DeleteFile(ctx, key); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	if err := fs.DeleteFile(ctx, key); err != nil {
		t.Fatalf("second DeleteFile should be a no-op: %v", err)
	}
	if err := fs.DeleteFile(ctx, "../etc/passwd"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestFileStorage_DropsUnknownExtensions(t *testing.T) {
	fs := NewFileStorage(t.TempDir(), "http://localhost:8080")
	ctx := context.Background()
	for name, want := range map[string]string{
		"pic.html":  "",
		"pic.JPEG":  ".jpg",
		"pic.webp":  ".webp",
		"pic.svg":   "",
		"no-ext":    "",
		"shell.php": "",
	} {
		key, err := fs.SaveFile(ctx, "p", name, strings.NewReader("x"))
		if err != nil {
			t.Fatalf("SaveFile(%s): %v", name, err)
		}
		if got := filepath.Ext(key); got != want {
			t.Errorf("%s stored with extension %q, want %q", name, got, want)
		}
	}
}

func TestImageExtension(t *testing.T) {
	if ext, ok := ImageExtension("image/jpeg"); !ok || ext != ".jpg" {
		t.Errorf("jpeg -> %q %v", ext, ok)
	}
	if _, ok := ImageExtension("text/html; charset=utf-8"); ok {
		t.Error("html must not map to an image extension")
	}
	if contentTypeFor(".gif") != "image/gif" || contentTypeFor("") != "application/octet-stream" {
		t.Error("unexpected content type mapping")
	}
}

func TestObjectNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n, err := objectName(".png")
		if err != nil {
			t.Fatalf("objectName: %v", err)
		}
		if seen[n] {
			t.Fatalf("duplicate name %q", n)
		}
		seen[n] = true
	}
	if s, _ := RandomHex(16); len(s) != 32 {
		t.Errorf("expected 32 hex chars, got %q", s)
	}
}
