package tx

import (
	"context"
	"sync"
)

// Manager serializes work that shares a key, e.g. every session start for one user.
type Manager interface {
	Within(ctx context.Context, key string, fn func(context.Context) error) error
}

type NoopManager struct{}

func (NoopManager) Within(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

// KeyedManager runs at most one fn per key at a time. Entries are dropped once
// no caller holds or waits on them.
type KeyedManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewKeyedManager() *KeyedManager {
	return &KeyedManager{locks: map[string]*keyLock{}}
}

func (m *KeyedManager) Within(ctx context.Context, key string, fn func(context.Context) error) error {
	lock := m.acquire(key)
	defer m.release(key, lock)

	select {
	case lock.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock.ch }()
	return fn(ctx)
}

func (m *KeyedManager) acquire(key string) *keyLock {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (m *KeyedManager) release(key string, lock *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(m.locks, key)
	}
}
