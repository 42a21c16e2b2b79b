package whitelist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
	"github.com/goccy/go-json"
)

// FileStore mutates the server's whitelist.json directly and asks the
// server to reload it afterwards. The server must share the file with
// the bot (same host or mounted volume).
type FileStore struct {
	path    string
	console rcon.Executor
	names   *keyedMutex
	fileMu  sync.Mutex
}

// NewFileStore creates a file-backed whitelist backend
func NewFileStore(path string, console rcon.Executor) *FileStore {
	return &FileStore{
		path:    path,
		console: console,
		names:   newKeyedMutex(),
	}
}

// Add inserts the resolved name into whitelist.json if it is not already
// present (case-insensitive) and issues "whitelist reload". A failed
// reload does not undo the insert: the entry is durable and the server
// picks it up on its next reload, so the approval still counts.
func (s *FileStore) Add(resolvedName string) (Result, error) {
	unlock := s.names.Lock(strings.ToLower(resolvedName))
	defer unlock()

	s.fileMu.Lock()
	result, err := s.insert(resolvedName)
	s.fileMu.Unlock()
	if err != nil {
		return 0, err
	}
	if result == ResultDuplicate {
		return ResultDuplicate, nil
	}

	if _, err := s.console.Execute("whitelist reload"); err != nil {
		// Entry already written; the reload is best-effort
		logger.Warn(fmt.Sprintf("Entrada '%s' escrita pero el reload falló: %v", resolvedName, err), "Whitelist")
	}
	return ResultAdded, nil
}

// insert performs the read-check-append-rewrite cycle under fileMu
func (s *FileStore) insert(resolvedName string) (Result, error) {
	entries, err := s.read()
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if strings.EqualFold(entry.Name, resolvedName) {
			return ResultDuplicate, nil
		}
	}

	entries = append(entries, models.WhitelistEntry{
		UUID: OfflineUUID(resolvedName).String(),
		Name: resolvedName,
	})

	if err := s.write(entries); err != nil {
		return 0, err
	}
	return ResultAdded, nil
}

// Has reports whether the resolved name is already whitelisted,
// case-insensitively
func (s *FileStore) Has(resolvedName string) (bool, error) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	entries, err := s.read()
	if err != nil {
		return false, err
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.Name, resolvedName) {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of whitelisted players
func (s *FileStore) Count() (int, error) {
	s.fileMu.Lock()
	defer s.fileMu.Unlock()

	entries, err := s.read()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// read loads and decodes the whitelist file
func (s *FileStore) read() ([]models.WhitelistEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("no se pudo leer el archivo de whitelist: %w", err)
	}

	var entries []models.WhitelistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("archivo de whitelist corrupto: %w", err)
	}
	return entries, nil
}

// write rewrites the whitelist file atomically (temp file + rename), so
// a crash mid-write never leaves the server with half a file
func (s *FileStore) write(entries []models.WhitelistEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".whitelist-*.json")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
