package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"storefront/internal/cartstorage"
	"storefront/internal/domain"
)

// PersistentStore decorates a Store with write-through persistence: after
// each mutation the full cart snapshot is serialized and forwarded to the
// storage collaborator. The in-memory cart is the source of truth; a failed
// persist is logged and never rolls back the mutation.
type PersistentStore struct {
	store   *Store
	storage cartstorage.Storage
	key     string
	logger  *log.Logger
}

// NewPersistentStore wraps store and restores any previously saved snapshot
// from the given slot. A missing or unparseable snapshot leaves the cart
// empty; it is never surfaced as an error.
func NewPersistentStore(ctx context.Context, store *Store, storage cartstorage.Storage, key string, logger *log.Logger) *PersistentStore {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	p := &PersistentStore{
		store:   store,
		storage: storage,
		key:     key,
		logger:  logger,
	}
	p.load(ctx)
	return p
}

func (p *PersistentStore) AddItem(ctx context.Context, item domain.CartItem, quantity int) {
	p.store.AddItem(item, quantity)
	p.persist(ctx)
}

func (p *PersistentStore) RemoveItem(ctx context.Context, productID int64, variantID string) {
	p.store.RemoveItem(productID, variantID)
	p.persist(ctx)
}

func (p *PersistentStore) UpdateQuantity(ctx context.Context, productID int64, quantity int, variantID string) {
	p.store.UpdateQuantity(productID, quantity, variantID)
	p.persist(ctx)
}

func (p *PersistentStore) Clear(ctx context.Context) {
	p.store.Clear()
	p.persist(ctx)
}

func (p *PersistentStore) ItemQuantity(productID int64, variantID string) int {
	return p.store.ItemQuantity(productID, variantID)
}

func (p *PersistentStore) Snapshot() domain.Cart {
	return p.store.Snapshot()
}

func (p *PersistentStore) load(ctx context.Context) {
	data, err := p.storage.Load(ctx, p.key)
	if err != nil {
		if !errors.Is(err, cartstorage.ErrNotFound) {
			p.logger.Printf("cart: load key=%s error=%v, starting empty", p.key, err)
		}
		return
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		p.logger.Printf("cart: discarding unreadable snapshot key=%s error=%v", p.key, err)
		return
	}
	p.store.Restore(cart)
}

// persist writes the entire snapshot, never a delta, so a crash between
// write and the next read cannot leave a structurally invalid cart behind.
func (p *PersistentStore) persist(ctx context.Context) {
	snapshot := p.store.Snapshot()
	data, err := json.Marshal(snapshot)
	if err != nil {
		p.logger.Printf("cart: marshal snapshot key=%s error=%v", p.key, err)
		return
	}
	if err := p.storage.Save(ctx, p.key, data); err != nil {
		p.logger.Printf("cart: persist key=%s error=%v", p.key, err)
	}
}
