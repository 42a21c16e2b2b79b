package whitelist

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/goccy/go-json"
)

func newTestFileStore(t *testing.T, initial []models.WhitelistEntry) (*FileStore, *fakeConsole, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "whitelist.json")

	if initial == nil {
		initial = []models.WhitelistEntry{}
	}
	data, err := json.Marshal(initial)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	console := &fakeConsole{responses: map[string]string{}}
	return NewFileStore(path, console), console, path
}

func readEntries(t *testing.T, path string) []models.WhitelistEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []models.WhitelistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestFileStoreAddThenDuplicate(t *testing.T) {
	store, console, path := newTestFileStore(t, nil)

	result, err := store.Add("Steve123")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if result != ResultAdded {
		t.Errorf("primer Add() = %v, want ResultAdded", result)
	}

	result, err = store.Add("Steve123")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if result != ResultDuplicate {
		t.Errorf("segundo Add() = %v, want ResultDuplicate", result)
	}

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Errorf("entradas = %d, want 1", len(entries))
	}

	// Exactly one reload, from the insert that actually changed the file
	reloads := 0
	for _, cmd := range console.commands {
		if cmd == "whitelist reload" {
			reloads++
		}
	}
	if reloads != 1 {
		t.Errorf("reloads = %d, want 1", reloads)
	}
}

func TestFileStoreDuplicateCaseInsensitive(t *testing.T) {
	store, _, path := newTestFileStore(t, []models.WhitelistEntry{
		{UUID: OfflineUUID("Steve123").String(), Name: "Steve123"},
	})

	result, err := store.Add("steve123")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if result != ResultDuplicate {
		t.Errorf("Add() = %v, want ResultDuplicate", result)
	}
	if entries := readEntries(t, path); len(entries) != 1 {
		t.Errorf("entradas = %d, want 1", len(entries))
	}
}

func TestFileStoreEntryHasOfflineUUID(t *testing.T) {
	store, _, path := newTestFileStore(t, nil)

	if _, err := store.Add("1Alex"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	entries := readEntries(t, path)
	if len(entries) != 1 {
		t.Fatalf("entradas = %d, want 1", len(entries))
	}
	if entries[0].Name != "1Alex" {
		t.Errorf("Name = %q, want %q", entries[0].Name, "1Alex")
	}
	if entries[0].UUID != OfflineUUID("1Alex").String() {
		t.Errorf("UUID = %q, want %q", entries[0].UUID, OfflineUUID("1Alex").String())
	}
}

func TestFileStoreMissingFile(t *testing.T) {
	console := &fakeConsole{}
	store := NewFileStore(filepath.Join(t.TempDir(), "nope.json"), console)

	if _, err := store.Add("Steve123"); err == nil {
		t.Error("Add() debería fallar si el archivo no existe")
	}
	if len(console.commands) != 0 {
		t.Error("no debería enviarse ningún reload si la escritura falló")
	}
}

func TestFileStoreCount(t *testing.T) {
	store, _, _ := newTestFileStore(t, []models.WhitelistEntry{
		{UUID: OfflineUUID("A").String(), Name: "A"},
		{UUID: OfflineUUID("B").String(), Name: "B"},
	})

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}

func TestFileStoreHas(t *testing.T) {
	store, _, _ := newTestFileStore(t, []models.WhitelistEntry{
		{UUID: OfflineUUID("Steve123").String(), Name: "Steve123"},
	})

	cases := []struct {
		name string
		want bool
	}{
		{"Steve123", true},
		{"steve123", true},
		{"Alex", false},
	}
	for _, tc := range cases {
		got, err := store.Has(tc.name)
		if err != nil {
			t.Fatalf("Has(%q) error = %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("Has(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFileStoreConcurrentDistinctNames(t *testing.T) {
	store, _, path := newTestFileStore(t, nil)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := store.Add(fmt.Sprintf("Player%d", i)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Add() concurrente falló: %v", err)
	}

	if entries := readEntries(t, path); len(entries) != n {
		t.Errorf("entradas = %d, want %d", len(entries), n)
	}
}

func TestFileStoreConcurrentSameName(t *testing.T) {
	store, _, path := newTestFileStore(t, nil)

	const n = 8
	var wg sync.WaitGroup
	results := make(chan Result, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := store.Add("Steve123")
			if err != nil {
				t.Error(err)
				return
			}
			results <- result
		}()
	}
	wg.Wait()
	close(results)

	added := 0
	for r := range results {
		if r == ResultAdded {
			added++
		}
	}
	if added != 1 {
		t.Errorf("inserciones reales = %d, want 1", added)
	}
	if entries := readEntries(t, path); len(entries) != 1 {
		t.Errorf("entradas = %d, want 1", len(entries))
	}
}
