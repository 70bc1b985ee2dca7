package cart

import (
	"context"
	"io"
	"log"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/cartstorage"
)

const storageNamespace = "cart-storage"

// Manager owns the cart stores for active shopping sessions. Each session
// gets its own store, created on demand and rehydrated from the durable
// slot keyed by the session id. Sessions never expire implicitly; a cart
// goes away only through Destroy.
type Manager struct {
	storage cartstorage.Storage
	logger  *log.Logger

	mu       sync.Mutex
	sessions map[string]*PersistentStore
}

func NewManager(storage cartstorage.Storage, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		storage:  storage,
		logger:   logger,
		sessions: make(map[string]*PersistentStore),
	}
}

// Create starts a fresh session with an empty cart and returns its id.
func (m *Manager) Create(ctx context.Context) (string, *PersistentStore) {
	id := uuid.NewString()
	store := NewPersistentStore(ctx, NewStore(), m.storage, storageKey(id), m.logger)

	m.mu.Lock()
	m.sessions[id] = store
	m.mu.Unlock()

	return id, store
}

// Get returns the store for the session, rehydrating it from durable
// storage if this process has not seen the session yet.
func (m *Manager) Get(ctx context.Context, sessionID string) *PersistentStore {
	m.mu.Lock()
	store, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if ok {
		return store
	}

	store = NewPersistentStore(ctx, NewStore(), m.storage, storageKey(sessionID), m.logger)

	m.mu.Lock()
	if existing, ok := m.sessions[sessionID]; ok {
		store = existing
	} else {
		m.sessions[sessionID] = store
	}
	m.mu.Unlock()

	return store
}

// Release drops the in-memory store for a session, keeping the durable
// snapshot so the cart survives for the session's next visit.
func (m *Manager) Release(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Destroy tears a session down completely: the in-memory store is dropped
// and the durable slot deleted.
func (m *Manager) Destroy(ctx context.Context, sessionID string) {
	m.Release(sessionID)
	if err := m.storage.Delete(ctx, storageKey(sessionID)); err != nil {
		m.logger.Printf("cart: delete session=%s error=%v", sessionID, err)
	}
}

func storageKey(sessionID string) string {
	return storageNamespace + ":" + sessionID
}
