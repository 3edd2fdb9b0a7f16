package ports

// GraphStore caches compiled graph dumps keyed by the fingerprint of their inputs.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type GraphStore interface {
	// Get returns the cached dump for key. Returns nil, nil if not found.
	Get(key string) ([]byte, error)
	// Put stores the dump under key.
	Put(key string, data []byte) error
}
