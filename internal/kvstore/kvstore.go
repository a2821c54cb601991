package kvstore

import "fmt"

// Store is a synchronous string-keyed get/set/remove interface. It is
// the durable backing for all session state; there are no transactions
// and no size guarantees beyond best effort.
type Store interface {
	// Get returns the stored value for key. The boolean reports whether
	// the key was present; a miss is not an error.
	Get(key string) (string, bool, error)
	// Set writes value under key, replacing any previous value.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is a no-op.
	Remove(key string) error
	// Close releases any underlying resources.
	Close() error
}

// Backend kinds accepted by New.
const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
	BackendMemory   = "memory"
)

// New constructs a Store by backend kind. For postgres, dsn is the
// database URL; for file, dsn is the file path; memory ignores dsn.
func New(kind, dsn string) (Store, error) {
	switch kind {
	case BackendPostgres:
		return NewPostgresStore(dsn)
	case BackendFile:
		if dsn == "" {
			return nil, fmt.Errorf("file path required for file backend")
		}
		return NewFileStore(dsn)
	case BackendMemory, "mem":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown kvstore backend: %s", kind)
	}
}
