package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func createSession(t *testing.T, env *testEnv) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/cart/sessions", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (body %s)", rec.Code, rec.Body.String())
	}
	id := rec.Header().Get(sessionHeader)
	if id == "" {
		t.Fatal("expected session id header on create")
	}
	return id
}

func TestCart_RequiresSessionHeader(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/cart", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without session header, got %d", rec.Code)
	}
}

func TestCart_AddAndMerge(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	body := `{"productId":1,"name":"Demo T-Shirt","slug":"demo-tee","priceCents":2499,"quantity":2}`
	rec := env.do(t, http.MethodPost, "/api/cart/items", session, strings.NewReader(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body %s)", rec.Code, rec.Body.String())
	}

	// Same product again merges into the existing row.
	rec = env.do(t, http.MethodPost, "/api/cart/items", session, strings.NewReader(body))
	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if len(snapshot.Items) != 1 {
		t.Fatalf("expected 1 row after merge, got %d", len(snapshot.Items))
	}
	if snapshot.Items[0].Quantity != 4 || snapshot.ItemCount != 4 || snapshot.TotalCents != 4*2499 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestCart_AddDefaultsQuantityToOne(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	body := `{"productId":1,"name":"Demo Mug","priceCents":1299}`
	rec := env.do(t, http.MethodPost, "/api/cart/items", session, strings.NewReader(body))

	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if snapshot.ItemCount != 1 || snapshot.TotalCents != 1299 {
		t.Fatalf("expected quantity to default to 1, got %+v", snapshot)
	}
}

func TestCart_VariantRowsAreDistinct(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	red := `{"productId":1,"name":"Demo T-Shirt","priceCents":2499,"quantity":1,"variant":{"id":"v-red","name":"Red"}}`
	blue := `{"productId":1,"name":"Demo T-Shirt","priceCents":2499,"quantity":1,"variant":{"id":"v-blue","name":"Blue"}}`
	env.do(t, http.MethodPost, "/api/cart/items", session, strings.NewReader(red))
	rec := env.do(t, http.MethodPost, "/api/cart/items", session, strings.NewReader(blue))

	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if len(snapshot.Items) != 2 {
		t.Fatalf("expected separate rows per variant, got %+v", snapshot.Items)
	}
}

func TestCart_UpdateQuantityAndRemove(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	env.do(t, http.MethodPost, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"name":"Demo T-Shirt","priceCents":2499,"quantity":2}`))

	rec := env.do(t, http.MethodPatch, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"quantity":5}`))
	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if snapshot.ItemCount != 5 || snapshot.TotalCents != 5*2499 {
		t.Fatalf("unexpected snapshot after update %+v", snapshot)
	}

	// Zero quantity removes the row.
	rec = env.do(t, http.MethodPatch, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"quantity":0}`))
	decodeData(t, rec, &snapshot)
	if len(snapshot.Items) != 0 || snapshot.TotalCents != 0 {
		t.Fatalf("expected empty cart after zero-quantity update, got %+v", snapshot)
	}
}

func TestCart_RemoveItemByVariant(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	env.do(t, http.MethodPost, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"name":"Demo T-Shirt","priceCents":2499,"variant":{"id":"v-red"}}`))
	env.do(t, http.MethodPost, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"name":"Demo T-Shirt","priceCents":2499,"variant":{"id":"v-blue"}}`))

	rec := env.do(t, http.MethodDelete, "/api/cart/items/1?variant=v-red", session, nil)
	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if len(snapshot.Items) != 1 || snapshot.Items[0].Variant.ID != "v-blue" {
		t.Fatalf("expected only the blue variant left, got %+v", snapshot.Items)
	}
}

func TestCart_ClearAndSessionSurvival(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	env.do(t, http.MethodPost, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"name":"Demo Mug","priceCents":1299,"quantity":3}`))

	// The cart survives the in-memory store being dropped.
	env.carts.Release(session)
	rec := env.do(t, http.MethodGet, "/api/cart", session, nil)
	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if snapshot.ItemCount != 3 {
		t.Fatalf("expected rehydrated cart with 3 items, got %+v", snapshot)
	}

	rec = env.do(t, http.MethodDelete, "/api/cart", session, nil)
	decodeData(t, rec, &snapshot)
	if len(snapshot.Items) != 0 || snapshot.TotalCents != 0 || snapshot.ItemCount != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", snapshot)
	}
}

func TestCart_DestroySession(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	env.do(t, http.MethodPost, "/api/cart/items", session,
		strings.NewReader(`{"productId":1,"name":"Demo Mug","priceCents":1299}`))

	rec := env.do(t, http.MethodDelete, "/api/cart/sessions", session, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/cart", session, nil)
	var snapshot domain.Cart
	decodeData(t, rec, &snapshot)
	if len(snapshot.Items) != 0 {
		t.Fatalf("expected empty cart after destroy, got %+v", snapshot)
	}
}

func TestCart_InvalidItemPayload(t *testing.T) {
	env := newTestEnv(t)
	session := createSession(t, env)

	rec := env.do(t, http.MethodPost, "/api/cart/items", session, strings.NewReader(`{"quantity":2}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for payload without product, got %d", rec.Code)
	}
}
