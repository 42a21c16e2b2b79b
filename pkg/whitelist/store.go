package whitelist

// Result is the outcome of a whitelist mutation that reached the backend
type Result int

const (
	// ResultAdded means the name was not present and is now whitelisted
	ResultAdded Result = iota
	// ResultDuplicate means the name was already whitelisted; the caller
	// decides whether that blocks the operation (it does not: the backend
	// is authoritative and the role still gets re-synced)
	ResultDuplicate
)

// String returns a short description of the result
func (r Result) String() string {
	if r == ResultDuplicate {
		return "duplicate"
	}
	return "added"
}

// Store is the capability shared by the remote-delegated and file-backed
// backends. Add is the only mutation; errors mean the backend could not
// be reached and nothing changed.
type Store interface {
	Add(resolvedName string) (Result, error)
}

// Counter is implemented by backends that can report how many entries
// they hold. The remote backend cannot, so this stays optional.
type Counter interface {
	Count() (int, error)
}

// Checker is implemented by backends that can answer membership without
// mutating anything, used to short-circuit applications for names that
// are already whitelisted.
type Checker interface {
	Has(resolvedName string) (bool, error)
}
