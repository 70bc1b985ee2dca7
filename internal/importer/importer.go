package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryResolver interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products.
// Rows with an empty slug are continuation rows carrying extra image URLs
// for the product above them.
type CSVImporter struct {
	reader     *csv.Reader
	products   ProductWriter
	categories CategoryResolver
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryResolver) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:     csvr,
		products:   products,
		categories: categories,
	}
}

type csvRow struct {
	Slug         string
	Name         string
	Desc         string
	SKU          string
	Cents        int64
	SaleCents    *int64
	Stock        int
	Featured     bool
	CategorySlug string
	ImageURLs    []string
}

// Run parses CSV rows and upserts products grouped by slug.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Slug != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		// Continuation rows (images) belong to the current product.
		if current != nil && len(row.ImageURLs) > 0 {
			current.ImageURLs = append(current.ImageURLs, row.ImageURLs...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	if row.Name == "" || row.SKU == "" || row.Cents == 0 {
		return fmt.Errorf("invalid product row (missing required fields) for slug %q", row.Slug)
	}

	p := domain.Product{
		Name:           row.Name,
		Slug:           row.Slug,
		Description:    row.Desc,
		PriceCents:     row.Cents,
		SalePriceCents: row.SaleCents,
		SKU:            row.SKU,
		Stock:          row.Stock,
		Featured:       row.Featured,
		Images:         row.ImageURLs,
	}

	if row.CategorySlug != "" && i.categories != nil {
		cat, err := i.categories.GetBySlug(ctx, row.CategorySlug)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("resolve category %q: %w", row.CategorySlug, err)
			}
		} else {
			p.CategoryID = &cat.ID
		}
	}

	if _, err := i.products.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Slug, err)
	}
	return nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[h] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	slug := pick(record, index, "slug")
	name := pick(record, index, "name")
	desc := pick(record, index, "description")
	sku := pick(record, index, "sku")
	centStr := pick(record, index, "price_cents")
	saleStr := pick(record, index, "sale_price_cents")
	stockStr := pick(record, index, "stock")
	featuredStr := pick(record, index, "featured")
	category := pick(record, index, "category")
	imageURL := pick(record, index, "image_url")

	if slug == "" && imageURL == "" {
		return nil
	}

	var cents int64
	if centStr != "" {
		cents, _ = strconv.ParseInt(centStr, 10, 64)
	}

	row := &csvRow{
		Slug:         slug,
		Name:         name,
		Desc:         desc,
		SKU:          sku,
		Cents:        cents,
		CategorySlug: category,
	}
	if saleStr != "" {
		if sale, err := strconv.ParseInt(saleStr, 10, 64); err == nil {
			row.SaleCents = &sale
		}
	}
	if stockStr != "" {
		row.Stock, _ = strconv.Atoi(stockStr)
	}
	row.Featured, _ = strconv.ParseBool(featuredStr)
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
