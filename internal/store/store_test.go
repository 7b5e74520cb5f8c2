package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/linkcodelearn/campus/pkg/domain"
)

func TestSaveLoadClear(t *testing.T) {
	s := New(t.TempDir())

	if got := s.Load(); got != nil {
		t.Fatalf("Load() on empty store = %+v, want nil", got)
	}

	u := &domain.User{FirstName: "A", LastName: "B", Email: "a@b.com", Role: domain.RoleStudent}
	if err := s.Save(u); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got := s.Load()
	if got == nil {
		t.Fatal("Load() = nil after Save")
	}
	if got.Email != "a@b.com" {
		t.Errorf("Email = %q, want %q", got.Email, "a@b.com")
	}
	if got.Role != domain.RoleStudent {
		t.Errorf("Role = %q, want %q", got.Role, domain.RoleStudent)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if got := s.Load(); got != nil {
		t.Errorf("Load() after Clear = %+v, want nil", got)
	}
	// Clearing twice is fine.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear() error: %v", err)
	}
}

func TestLoadCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	s := New(dir)
	if got := s.Load(); got != nil {
		t.Errorf("Load() on corrupt record = %+v, want nil", got)
	}
}

func TestSaveCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".campus")
	s := New(dir)
	if err := s.Save(&domain.User{Email: "a@b.com"}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("store dir not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("store path is not a directory")
	}
}
