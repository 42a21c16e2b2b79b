// Package setup remembers which message renders each configured screen,
// so re-running setup edits the existing message instead of posting a
// duplicate.
package setup

import (
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/logger"
	"github.com/PancyStudios/PancyWhitelistGo/pkg/models"
)

// Screen names the setup surfaces the bot renders
const (
	ScreenApply  = "apply"
	ScreenPanel  = "panel"
	ScreenStatus = "status"
)

// Registry persists screen pointers in a JSON file
type Registry struct {
	path     string
	mu       sync.Mutex
	pointers map[string]models.SetupPointer
}

var (
	instance *Registry
	once     sync.Once
)

// Init loads the registry from the given file. A missing file starts the
// registry empty
func Init(path string) *Registry {
	once.Do(func() {
		instance = NewRegistry(path)
	})
	return instance
}

// Get returns the initialized registry
func Get() *Registry {
	if instance == nil {
		logger.Critical("Registro de setup no inicializado. Llama a setup.Init primero", "Setup")
		panic("setup: Init no fue llamado")
	}
	return instance
}

// NewRegistry builds a standalone registry for a given file
func NewRegistry(path string) *Registry {
	r := &Registry{path: path, pointers: make(map[string]models.SetupPointer)}
	r.load()
	return r
}

func (r *Registry) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("No se pudo leer el archivo de setup: "+err.Error(), "Setup")
		}
		return
	}
	if err := json.Unmarshal(data, &r.pointers); err != nil {
		logger.Warn("Archivo de setup corrupto, se ignora: "+err.Error(), "Setup")
		r.pointers = make(map[string]models.SetupPointer)
	}
}

// Lookup returns the pointer for a screen, if one was persisted
func (r *Registry) Lookup(screen string) (models.SetupPointer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ptr, ok := r.pointers[screen]
	return ptr, ok
}

// Save persists the pointer for a screen, replacing any previous one
func (r *Registry) Save(screen string, ptr models.SetupPointer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, had := r.pointers[screen]
	r.pointers[screen] = ptr

	if err := r.persistLocked(); err != nil {
		if had {
			r.pointers[screen] = prev
		} else {
			delete(r.pointers, screen)
		}
		return err
	}
	return nil
}

func (r *Registry) persistLocked() error {
	data, err := json.MarshalIndent(r.pointers, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "setup-*.json")
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

	return os.Rename(tmpName, r.path)
}
