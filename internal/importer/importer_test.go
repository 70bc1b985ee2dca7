package importer

import (
	"context"
	"strings"
	"testing"

	"storefront/internal/domain"
)

type stubProductWriter struct {
	items []domain.Product
}

func (s *stubProductWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.items = append(s.items, p)
	return &p, nil
}

type stubCategoryResolver struct {
	bySlug map[string]*domain.Category
}

func (s *stubCategoryResolver) GetBySlug(_ context.Context, slug string) (*domain.Category, error) {
	if cat, ok := s.bySlug[slug]; ok {
		return cat, nil
	}
	return nil, domain.ErrNotFound
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `slug,name,description,sku,price_cents,sale_price_cents,stock,featured,category,image_url
demo-tee,Demo T-Shirt,A plain tee,TEE-001,2499,1999,40,true,apparel,https://example.com/tee-front.jpg
,,,,,,,,,https://example.com/tee-back.jpg
demo-mug,Demo Mug,Holds coffee,MUG-001,1299,,120,false,missing-cat,`

	products := &stubProductWriter{}
	categories := &stubCategoryResolver{bySlug: map[string]*domain.Category{
		"apparel": {ID: 7, Slug: "apparel", Name: "Apparel"},
	}}
	imp := NewCSVImporter(strings.NewReader(csvData), products, categories)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 products imported, got %d", count)
	}
	if len(products.items) != 2 {
		t.Fatalf("expected 2 products saved, got %d", len(products.items))
	}

	tee := products.items[0]
	if tee.Slug != "demo-tee" || tee.SKU != "TEE-001" || tee.PriceCents != 2499 {
		t.Fatalf("unexpected product data: %+v", tee)
	}
	if tee.SalePriceCents == nil || *tee.SalePriceCents != 1999 {
		t.Fatalf("expected sale price 1999, got %+v", tee.SalePriceCents)
	}
	if !tee.Featured || tee.Stock != 40 {
		t.Fatalf("expected featured product with stock 40, got %+v", tee)
	}
	if len(tee.Images) != 2 || tee.Images[1] != "https://example.com/tee-back.jpg" {
		t.Fatalf("expected continuation row image appended, got %v", tee.Images)
	}
	if tee.CategoryID == nil || *tee.CategoryID != 7 {
		t.Fatalf("expected category resolved to 7, got %+v", tee.CategoryID)
	}

	mug := products.items[1]
	if mug.SalePriceCents != nil {
		t.Fatalf("expected no sale price on mug, got %v", *mug.SalePriceCents)
	}
	if mug.CategoryID != nil {
		t.Fatalf("expected unknown category to be skipped, got %v", *mug.CategoryID)
	}
}

func TestCSVImporter_InvalidRow(t *testing.T) {
	csvData := `slug,name,description,sku,price_cents,sale_price_cents,stock,featured,category,image_url
bad-row,,no name or sku,,0,,,,,`

	products := &stubProductWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), products, nil)

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected error for row missing required fields")
	}
	if len(products.items) != 0 {
		t.Fatalf("expected no products saved, got %d", len(products.items))
	}
}

func TestCSVImporter_LeadingContinuationIgnored(t *testing.T) {
	csvData := `slug,name,description,sku,price_cents,sale_price_cents,stock,featured,category,image_url
,,,,,,,,,https://example.com/orphan.jpg
demo-mug,Demo Mug,Holds coffee,MUG-001,1299,,120,false,,`

	products := &stubProductWriter{}
	imp := NewCSVImporter(strings.NewReader(csvData), products, nil)

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 product imported, got %d", count)
	}
	if len(products.items[0].Images) != 0 {
		t.Fatalf("expected orphan image dropped, got %v", products.items[0].Images)
	}
}
