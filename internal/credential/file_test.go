package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cookies.json")
	s := NewFileStore(path)

	want := []Cookie{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}
	if err := s.Save(context.Background(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Header(got) != "a=1; b=2" {
		t.Fatalf("loaded %v", got)
	}
}

func TestFileStoreIgnoresBrowserFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	data := `[{"name":"_awt","value":"x","domain":".aviasales.kz","path":"/","httpOnly":true}]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Header(got) != "_awt=x" {
		t.Fatalf("loaded %v", got)
	}
}

func TestFileStoreMissingOrEmpty(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileStore(filepath.Join(dir, "absent.json")).Load(context.Background())
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("missing file: expected ErrNoCredential, got %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte(`[]`), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err = NewFileStore(empty).Load(context.Background())
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("empty file: expected ErrNoCredential, got %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(broken).Load(context.Background()); err == nil || errors.Is(err, ErrNoCredential) {
		t.Fatalf("broken file: expected decode error, got %v", err)
	}
}
