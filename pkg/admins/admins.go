// Package admins maintains the flat list of users allowed to operate the
// administration surfaces of the bot.
package admins

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
)

// SuperAdminID is always a member of the administrator set, even when the
// persisted file is missing or corrupt. It is the bootstrap identity that
// can add the first real administrators
const SuperAdminID = "335283155359698944"

var ErrAlreadyAdmin = errors.New("el usuario ya es administrador")

// Set is the persisted administrator set backed by a JSON file
type Set struct {
	path string
	mu   sync.RWMutex
	ids  map[string]struct{}
}

var (
	instance *Set
	once     sync.Once
)

// Init loads the administrator set from the given file. Called once at
// startup; a missing file is not an error, the set starts empty
func Init(path string) *Set {
	once.Do(func() {
		instance = &Set{path: path, ids: make(map[string]struct{})}
		if err := instance.load(); err != nil {
			logger.Warn("No se pudo cargar la lista de administradores: "+err.Error(), "Admins")
		}
	})
	return instance
}

// Get returns the initialized administrator set
func Get() *Set {
	if instance == nil {
		logger.Critical("Lista de administradores no inicializada. Llama a admins.Init primero", "Admins")
		panic("admins: Init no fue llamado")
	}
	return instance
}

// NewSet builds a standalone set for a given file, used by tests
func NewSet(path string) *Set {
	s := &Set{path: path, ids: make(map[string]struct{})}
	_ = s.load()
	return s
}

func (s *Set) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var list models.AdminList
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("archivo de administradores corrupto: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range list.IDs {
		s.ids[id] = struct{}{}
	}
	return nil
}

// IsMember reports whether a user may operate the admin surfaces
func (s *Set) IsMember(userID string) bool {
	if userID == SuperAdminID {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[userID]
	return ok
}

// Add persists a new administrator. Adding an existing member returns
// ErrAlreadyAdmin and leaves the file untouched
func (s *Set) Add(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[userID]; ok || userID == SuperAdminID {
		return ErrAlreadyAdmin
	}
	s.ids[userID] = struct{}{}

	if err := s.persistLocked(); err != nil {
		delete(s.ids, userID)
		return err
	}

	logger.Info("Administrador añadido: "+userID, "Admins")
	return nil
}

// All returns every persisted administrator plus the super admin
func (s *Set) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids)+1)
	out = append(out, SuperAdminID)
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}

// persistLocked rewrites the backing file atomically; callers hold s.mu
func (s *Set) persistLocked() error {
	list := models.AdminList{IDs: make([]string, 0, len(s.ids))}
	for id := range s.ids {
		list.IDs = append(list.IDs, id)
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "admins-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}
