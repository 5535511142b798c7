package registry

import (
	"sync"
)

// Registry is a keyed global/per-request value store. Extension surfaces
// (cmd, cron, api, graphql) keep their registrations here and lock the key
// once init-time registration is over; a locked key rejects writes.
type Registry struct {
	mu     sync.RWMutex
	global map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		global: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
}

// SetGlobal stores a value. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		panic("core/registry: key locked: " + key)
	}
	r.global[key] = value
}

// GetGlobal returns the value for key and whether it was set.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.global[key]
	return v, ok
}

// Lock marks a key immutable. Idempotent.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = true
}

// IsLocked reports whether a key is locked.
func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting re-opens a locked key. Tests only.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locked[key] = false
}
