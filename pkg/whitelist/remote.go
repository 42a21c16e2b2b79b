package whitelist

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyWhitelistGo/pkg/rcon"
)

// RemoteStore delegates the whitelist entirely to the server: one
// "whitelist add" command per approval, the server owns the file.
type RemoteStore struct {
	console rcon.Executor
}

// NewRemoteStore creates a remote-delegated whitelist backend
func NewRemoteStore(console rcon.Executor) *RemoteStore {
	return &RemoteStore{console: console}
}

// Add sends "whitelist add <name>" and classifies the console's reply
func (s *RemoteStore) Add(resolvedName string) (Result, error) {
	resp, err := s.console.Execute("whitelist add " + resolvedName)
	if err != nil {
		return 0, err
	}
	return classifyAddResponse(resp)
}

// classifyAddResponse maps the console's human-readable reply onto a
// Result. The vanilla console offers no structured success/failure
// encoding, so this is a compatibility shim coupled to its exact
// phrasing; the known templates are:
//
//	"Added <name> to the whitelist"
//	"Player is already whitelisted"
//
// Anything else (empty reply included) is treated as unreachable so the
// approval stays retryable instead of guessing.
func classifyAddResponse(resp string) (Result, error) {
	lower := strings.ToLower(resp)
	switch {
	case strings.Contains(lower, "already whitelisted"):
		return ResultDuplicate, nil
	case strings.Contains(lower, "added"):
		return ResultAdded, nil
	default:
		return 0, fmt.Errorf("%w: respuesta no reconocida: %q", rcon.ErrUnreachable, resp)
	}
}
