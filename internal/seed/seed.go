package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
)

type categorySeed struct {
	Name        string
	Slug        string
	Description string
}

type productSeed struct {
	Name           string
	Slug           string
	Description    string
	PriceCents     int64
	SalePriceCents *int64
	SKU            string
	Stock          int
	Featured       bool
	CategorySlug   string
	Images         []string
	Variants       []domain.ProductVariant
}

// Apply inserts demo catalog data for manual testing. It is idempotent: the
// repositories upsert by slug.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categories := categoryrepo.NewPostgres(pool)
	products := productrepo.NewPostgres(pool, nil)

	catIDs := map[string]int64{}
	for _, c := range demoCategories() {
		saved, err := categories.Upsert(ctx, domain.Category{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
		})
		if err != nil {
			return fmt.Errorf("upsert category %s: %w", c.Slug, err)
		}
		catIDs[c.Slug] = saved.ID
	}

	for _, p := range demoProducts() {
		product := domain.Product{
			Name:           p.Name,
			Slug:           p.Slug,
			Description:    p.Description,
			PriceCents:     p.PriceCents,
			SalePriceCents: p.SalePriceCents,
			SKU:            p.SKU,
			Stock:          p.Stock,
			Featured:       p.Featured,
			Images:         p.Images,
			Variants:       p.Variants,
		}
		if id, ok := catIDs[p.CategorySlug]; ok {
			product.CategoryID = &id
		}
		if _, err := products.Upsert(ctx, product); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	return nil
}

func demoCategories() []categorySeed {
	return []categorySeed{
		{Name: "Apparel", Slug: "apparel", Description: "Shirts, hoodies and caps"},
		{Name: "Drinkware", Slug: "drinkware", Description: "Mugs and bottles"},
	}
}

func demoProducts() []productSeed {
	sale := int64(1499)
	return []productSeed{
		{
			Name:         "Demo T-Shirt",
			Slug:         "demo-t-shirt",
			Description:  "Soft cotton tee for demo purposes",
			PriceCents:   1999,
			SKU:          "SKU-DEMO-TSHIRT",
			Stock:        120,
			Featured:     true,
			CategorySlug: "apparel",
			Images:       []string{"https://example.com/images/demo-t-shirt.jpg"},
			Variants: []domain.ProductVariant{
				{ID: "tshirt-s-red", Name: "Small / Red", SKU: "SKU-DEMO-TSHIRT-S-R", PriceCents: 1999, Stock: 40, Attributes: map[string]string{"size": "S", "color": "red"}},
				{ID: "tshirt-m-blue", Name: "Medium / Blue", SKU: "SKU-DEMO-TSHIRT-M-B", PriceCents: 1999, Stock: 55, Attributes: map[string]string{"size": "M", "color": "blue"}},
			},
		},
		{
			Name:           "Demo Hoodie",
			Slug:           "demo-hoodie",
			Description:    "Heavyweight hoodie with demo logo",
			PriceCents:     4999,
			SalePriceCents: &sale,
			SKU:            "SKU-DEMO-HOODIE",
			Stock:          35,
			CategorySlug:   "apparel",
		},
		{
			Name:         "Demo Mug",
			Slug:         "demo-mug",
			Description:  "Ceramic mug with demo logo",
			PriceCents:   1299,
			SKU:          "SKU-DEMO-MUG",
			Stock:        200,
			Featured:     true,
			CategorySlug: "drinkware",
			Images:       []string{"https://example.com/images/demo-mug.jpg"},
		},
	}
}
