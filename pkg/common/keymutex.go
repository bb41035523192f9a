package common

import "sync"

// KeyMutex serializes work per string key. The engine uses it to guard the
// read-modify-write of one (player, definition) progress record against
// concurrent events for the same pair, while leaving unrelated pairs free to
// proceed in parallel.
//
// Mutexes are created lazily and never removed; the key space is bounded by
// players x definitions seen by one process, which is acceptable for the
// engine's deployment model.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyMutex creates an empty KeyMutex.
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given key, creating it on first use.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock releases the mutex for the given key. The key must be locked.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	m := k.locks[key]
	k.mu.Unlock()

	m.Unlock()
}
