package cart

import (
	"context"
	"errors"
	"log"
	"reflect"
	"strings"
	"testing"

	"storefront/internal/cartstorage"
)

type failingStorage struct {
	saveErr error
	loadErr error
	saved   [][]byte
}

func (f *failingStorage) Save(_ context.Context, _ string, data []byte) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.saved = append(f.saved, cp)
	return nil
}

func (f *failingStorage) Load(_ context.Context, _ string) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return nil, cartstorage.ErrNotFound
}

func (f *failingStorage) Delete(_ context.Context, _ string) error { return nil }

func TestPersistentStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := cartstorage.NewMemory()

	p := NewPersistentStore(ctx, NewStore(), storage, "cart-storage:session", nil)
	p.AddItem(ctx, variantItem(1, 1000, "red"), 2)
	p.AddItem(ctx, item(2, 450), 1)
	want := p.Snapshot()

	restored := NewPersistentStore(ctx, NewStore(), storage, "cart-storage:session", nil)
	got := restored.Snapshot()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
	if got.Items[0].Variant == nil || got.Items[0].Variant.Attributes["color"] != "red" {
		t.Fatalf("variant attributes lost in round trip: %+v", got.Items[0])
	}
}

func TestPersistentStorePersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{}

	p := NewPersistentStore(ctx, NewStore(), storage, "k", nil)
	p.AddItem(ctx, item(1, 100), 1)
	p.UpdateQuantity(ctx, 1, 5, "")
	p.RemoveItem(ctx, 1, "")
	p.Clear(ctx)

	if len(storage.saved) != 4 {
		t.Fatalf("expected 4 snapshots written, got %d", len(storage.saved))
	}
}

func TestPersistentStoreKeepsMutationOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	var buf strings.Builder
	logger := log.New(&buf, "", 0)
	storage := &failingStorage{saveErr: errors.New("storage down")}

	p := NewPersistentStore(ctx, NewStore(), storage, "k", logger)
	p.AddItem(ctx, item(1, 100), 2)

	if got := p.ItemQuantity(1, ""); got != 2 {
		t.Fatalf("in-memory mutation rolled back: quantity %d", got)
	}
	if !strings.Contains(buf.String(), "storage down") {
		t.Fatalf("persist failure not logged: %q", buf.String())
	}
}

func TestPersistentStoreDiscardsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := cartstorage.NewMemory()
	if err := storage.Save(ctx, "k", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt snapshot: %v", err)
	}

	p := NewPersistentStore(ctx, NewStore(), storage, "k", nil)
	snap := p.Snapshot()
	if len(snap.Items) != 0 || snap.TotalCents != 0 || snap.ItemCount != 0 {
		t.Fatalf("corrupt snapshot surfaced instead of empty cart: %+v", snap)
	}
}

func TestPersistentStoreStartsEmptyOnLoadError(t *testing.T) {
	ctx := context.Background()
	storage := &failingStorage{loadErr: errors.New("storage down")}

	p := NewPersistentStore(ctx, NewStore(), storage, "k", nil)
	if got := len(p.Snapshot().Items); got != 0 {
		t.Fatalf("expected empty cart, got %d rows", got)
	}
}
