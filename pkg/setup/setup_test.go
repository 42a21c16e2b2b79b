package setup

import (
	"path/filepath"
	"testing"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
)

func TestLookupMissing(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "setup.json"))
	if _, ok := r.Lookup(ScreenApply); ok {
		t.Error("una pantalla nunca guardada no debe tener puntero")
	}
}

func TestSaveAndLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.json")
	r := NewRegistry(path)

	ptr := models.SetupPointer{ChannelID: "chan-1", MessageID: "msg-1"}
	if err := r.Save(ScreenApply, ptr); err != nil {
		t.Fatalf("Save falló: %v", err)
	}

	got, ok := r.Lookup(ScreenApply)
	if !ok || got != ptr {
		t.Errorf("Lookup = %+v, %v; esperado %+v", got, ok, ptr)
	}

	// A fresh registry over the same file sees the pointer
	reloaded := NewRegistry(path)
	got, ok = reloaded.Lookup(ScreenApply)
	if !ok || got != ptr {
		t.Errorf("tras recargar: Lookup = %+v, %v; esperado %+v", got, ok, ptr)
	}
}

func TestSaveReplaces(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "setup.json"))

	first := models.SetupPointer{ChannelID: "chan-1", MessageID: "msg-1"}
	second := models.SetupPointer{ChannelID: "chan-2", MessageID: "msg-2"}
	if err := r.Save(ScreenPanel, first); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(ScreenPanel, second); err != nil {
		t.Fatal(err)
	}

	got, _ := r.Lookup(ScreenPanel)
	if got != second {
		t.Errorf("Lookup = %+v, esperado el puntero más reciente %+v", got, second)
	}
}

func TestScreensAreIndependent(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "setup.json"))

	if err := r.Save(ScreenApply, models.SetupPointer{ChannelID: "a", MessageID: "1"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Lookup(ScreenPanel); ok {
		t.Error("guardar una pantalla no debe afectar a otra")
	}
}
