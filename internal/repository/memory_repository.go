package repository

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"clothing-catalog/internal/models"
)

// MemoryCatalog holds the whole catalog in process memory. It backs the
// static file variant and doubles as a storage fake in tests. Inserts live
// only as long as the process.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []models.Product
	banners  []models.Banner
	search   SearchOptions
}

// NewMemoryCatalog wraps products, assigning ids to those without one.
func NewMemoryCatalog(products []models.Product, search SearchOptions) *MemoryCatalog {
	c := &MemoryCatalog{search: search}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		c.products = append(c.products, p)
	}
	return c
}

// LoadMemoryCatalog reads a JSON array of products from path. Records that
// carry a valid hex id keep it; the rest are assigned one.
func LoadMemoryCatalog(path string, search SearchOptions) (*MemoryCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "parse catalog file %s", path)
	}

	products := make([]models.Product, 0, len(records))
	for i, record := range records {
		var p models.Product
		if err := json.Unmarshal(record, &p); err != nil {
			return nil, errors.Wrapf(err, "catalog record %d", i)
		}

		var ids struct {
			ID      string `json:"id"`
			MongoID string `json:"_id"`
		}
		_ = json.Unmarshal(record, &ids)
		for _, hex := range []string{ids.ID, ids.MongoID} {
			if objID, err := primitive.ObjectIDFromHex(hex); err == nil {
				p.ID = objID
				break
			}
		}

		products = append(products, p)
	}

	return NewMemoryCatalog(products, search), nil
}

// ListCategories returns every distinct category, lower-cased.
func (c *MemoryCatalog) ListCategories(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	values := make([]interface{}, 0, len(c.products))
	for _, p := range c.products {
		if p.Category != "" {
			values = append(values, p.Category)
		}
	}
	return normalizeCategories(values), nil
}

// FindByCategory matches name anywhere in the category, ignoring case.
func (c *MemoryCatalog) FindByCategory(_ context.Context, name string) ([]models.Product, error) {
	return c.filter(func(p models.Product) bool {
		return containsFold(p.Category, name)
	}), nil
}

// Search scans products for the query terms.
func (c *MemoryCatalog) Search(_ context.Context, query string) ([]models.Product, error) {
	terms, err := c.search.terms(query)
	if err != nil {
		return nil, err
	}
	fields := c.search.fields()

	return c.filter(func(p models.Product) bool {
		for _, term := range terms {
			for _, field := range fields {
				if containsFold(fieldValue(p, field), term) {
					return true
				}
			}
		}
		return false
	}), nil
}

// ListAll returns a copy of every product.
func (c *MemoryCatalog) ListAll(_ context.Context) ([]models.Product, error) {
	return c.filter(func(models.Product) bool { return true }), nil
}

// GetByID looks a product up by its hex ObjectID.
func (c *MemoryCatalog) GetByID(_ context.Context, id string) (*models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if p.ID == objID {
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// InsertProduct appends the product and sets its new ID.
func (c *MemoryCatalog) InsertProduct(_ context.Context, product *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	product.ID = primitive.NewObjectID()
	c.products = append(c.products, *product)
	return nil
}

// ListBanners returns a copy of every banner.
func (c *MemoryCatalog) ListBanners(_ context.Context) ([]models.Banner, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	banners := make([]models.Banner, len(c.banners))
	copy(banners, c.banners)
	return banners, nil
}

// InsertBanner checks and inserts under one lock, so duplicates cannot race in.
func (c *MemoryCatalog) InsertBanner(_ context.Context, banner *models.Banner) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range c.banners {
		if b.Category == banner.Category {
			return ErrBannerExists
		}
	}
	banner.ID = primitive.NewObjectID()
	c.banners = append(c.banners, *banner)
	return nil
}

// Ping always succeeds; there is nothing to reach.
func (c *MemoryCatalog) Ping(context.Context) error {
	return nil
}

func (c *MemoryCatalog) filter(keep func(models.Product) bool) []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	products := make([]models.Product, 0)
	for _, p := range c.products {
		if keep(p) {
			products = append(products, p)
		}
	}
	return products
}

func fieldValue(p models.Product, field string) string {
	switch field {
	case "name":
		return p.Name
	case "description":
		return p.Description
	case "category":
		return p.Category
	}
	return ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
