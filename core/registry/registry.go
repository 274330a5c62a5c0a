package registry

import (
	"sync"
)

// Registry is a keyed value store with per-key locking. Extension registries
// (cmd, cron, api, graphql, locales) live here so that custom packages can
// register themselves from init() and the app can freeze them after boot.
type Registry struct {
	values sync.Map // key -> interface{}
	locked sync.Map // key -> struct{}
}

// GlobalRegistry is the process-wide registry instance.
var GlobalRegistry = &Registry{}

// GetGlobal returns the value stored under key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	return r.values.Load(key)
}

// SetGlobal stores value under key. Panics if the key is locked.
func (r *Registry) SetGlobal(key string, value interface{}) {
	if r.IsLocked(key) {
		panic("registry: set on locked key " + key)
	}
	r.values.Store(key, value)
}

// Lock freezes a key. Further SetGlobal calls for it panic.
func (r *Registry) Lock(key string) {
	r.locked.Store(key, struct{}{})
}

// IsLocked reports whether a key is frozen.
func (r *Registry) IsLocked(key string) bool {
	_, ok := r.locked.Load(key)
	return ok
}

// UnlockForTesting reopens a locked key. Tests only.
func (r *Registry) UnlockForTesting(key string) {
	r.locked.Delete(key)
}
