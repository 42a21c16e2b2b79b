package admins

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	return NewSet(filepath.Join(t.TempDir(), "admins.json"))
}

func TestSuperAdminAlwaysMember(t *testing.T) {
	s := newTestSet(t)
	if !s.IsMember(SuperAdminID) {
		t.Error("el super admin debe ser miembro aunque el archivo no exista")
	}
	if s.IsMember("999") {
		t.Error("un usuario cualquiera no debe ser miembro")
	}
}

func TestAddAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.json")
	s := NewSet(path)

	if err := s.Add("123"); err != nil {
		t.Fatalf("Add falló: %v", err)
	}
	if !s.IsMember("123") {
		t.Error("el usuario añadido debe ser miembro")
	}

	// A fresh set over the same file sees the persisted member
	reloaded := NewSet(path)
	if !reloaded.IsMember("123") {
		t.Error("el miembro debe sobrevivir una recarga del archivo")
	}
}

func TestAddDuplicate(t *testing.T) {
	s := newTestSet(t)
	if err := s.Add("123"); err != nil {
		t.Fatalf("Add falló: %v", err)
	}
	if err := s.Add("123"); err != ErrAlreadyAdmin {
		t.Errorf("error = %v, esperado ErrAlreadyAdmin", err)
	}
	if err := s.Add(SuperAdminID); err != ErrAlreadyAdmin {
		t.Errorf("añadir al super admin: error = %v, esperado ErrAlreadyAdmin", err)
	}
}

func TestAllIncludesSuperAdmin(t *testing.T) {
	s := newTestSet(t)
	_ = s.Add("123")
	_ = s.Add("456")

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("All() = %d miembros, esperado 3", len(all))
	}
	if all[0] != SuperAdminID {
		t.Errorf("el super admin debe listarse primero, got %s", all[0])
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.json")
	if err := os.WriteFile(path, []byte("{no es json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewSet(path)
	if s.IsMember("123") {
		t.Error("un archivo corrupto debe dejar el conjunto vacío")
	}
	if !s.IsMember(SuperAdminID) {
		t.Error("el super admin sigue siendo miembro con archivo corrupto")
	}
}
