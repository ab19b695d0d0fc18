// Package slot provides durable key-value persistence slots. Each slot holds
// one serialized collection or setting under a fixed string key, mirroring the
// browser localStorage model the engine was designed around.
package slot

// Store is a durable key-value slot store.
type Store interface {
	// Get returns the value stored under key. The second return is false when
	// the key is absent.
	Get(key string) (string, bool, error)

	// Set writes value under key, replacing any previous value (last write wins,
	// no partial writes).
	Set(key, value string) error

	// Delete removes the slot entirely. Deleting an absent key is a no-op.
	Delete(key string) error

	// Close releases backend resources.
	Close() error
}
