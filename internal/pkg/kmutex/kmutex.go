package kmutex

import "sync"

// KeyedMutex hands out one mutex per int64 key. The booking engine locks per
// equipment id so the overlap check and the insert run as a unit; the chat
// service locks per conversation id while assigning message timestamps.
//
// Locks are never evicted. The key space is bounded by the number of
// equipment items and conversations, and a mutex is two words.
type KeyedMutex struct {
	locks sync.Map
}

func New() *KeyedMutex {
	return &KeyedMutex{}
}

func (k *KeyedMutex) Lock(key int64) {
	k.mu(key).Lock()
}

func (k *KeyedMutex) Unlock(key int64) {
	k.mu(key).Unlock()
}

func (k *KeyedMutex) mu(key int64) *sync.Mutex {
	m, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	return m.(*sync.Mutex)
}
