package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/cartstorage"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
)

type stubProductRepo struct {
	products []domain.Product
	err      error
}

func (s *stubProductRepo) List(_ context.Context, f productrepo.ListFilter) ([]domain.Product, int, error) {
	return s.products, len(s.products), s.err
}

func (s *stubProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].Slug == slug {
			return &s.products[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubProductRepo) ListFeatured(_ context.Context, limit int) ([]domain.Product, error) {
	var featured []domain.Product
	for _, p := range s.products {
		if p.Featured && len(featured) < limit {
			featured = append(featured, p)
		}
	}
	return featured, s.err
}

func (s *stubProductRepo) Search(_ context.Context, _ string, _ int) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, s.err
}

type stubCategoryRepo struct {
	categories []domain.Category
}

func (s *stubCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryRepo) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for i := range s.categories {
		if s.categories[i].Slug == slug {
			return &s.categories[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubCategoryRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

type stubOrderRepo struct {
	orders []domain.Order
	nextID int64
}

func (s *stubOrderRepo) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.nextID++
	o.ID = s.nextID
	s.orders = append(s.orders, o)
	return &o, nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) GetByCheckoutRef(_ context.Context, ref string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].CheckoutRef == ref {
			return &s.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) ListByEmail(_ context.Context, email string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.CustomerEmail == email {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id int64, status string) (*domain.Order, error) {
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			return &s.orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

type testEnv struct {
	router   *gin.Engine
	products *stubProductRepo
	orders   *stubOrderRepo
	carts    *cart.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)

	products := &stubProductRepo{}
	categories := &stubCategoryRepo{}
	orders := &stubOrderRepo{}
	carts := cart.NewManager(cartstorage.NewMemory(), logger)

	deps := Deps{
		Products:   productsvc.New(products),
		Categories: categorysvc.New(categories),
		Orders:     ordersvc.New(orders),
		Carts:      carts,
	}
	return &testEnv{
		router:   buildRouter(logger, nil, deps, []string{"http://localhost:3000"}),
		products: products,
		orders:   orders,
		carts:    carts,
	}
}

func (e *testEnv) do(t *testing.T, method, path, sessionID string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(sessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v (body %s)", err, rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReadyz_NoDatabase(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
}
