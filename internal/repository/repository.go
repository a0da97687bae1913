package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"clothing-catalog/internal/models"
)

var (
	ErrInvalidID       = errors.New("invalid product ID")
	ErrProductNotFound = errors.New("product not found")
	ErrBannerExists    = errors.New("banner already exists")
	ErrEmptyQuery      = errors.New("empty search query")
)

// Catalog is the storage contract the HTTP layer depends on.
type Catalog interface {
	ListCategories(ctx context.Context) ([]string, error)
	FindByCategory(ctx context.Context, name string) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	InsertProduct(ctx context.Context, product *models.Product) error
	ListBanners(ctx context.Context) ([]models.Banner, error)
	InsertBanner(ctx context.Context, banner *models.Banner) error
	Ping(ctx context.Context) error
}

type SearchMode string

const (
	// SearchSubstring matches the whole query as one substring.
	SearchSubstring SearchMode = "substring"
	// SearchTokens splits the query on whitespace and matches any token.
	SearchTokens SearchMode = "tokens"
)

type SearchOptions struct {
	Mode            SearchMode
	IncludeCategory bool
}

// fields returns the product fields a search looks at.
func (o SearchOptions) fields() []string {
	fields := []string{"name", "description"}
	if o.IncludeCategory {
		fields = append(fields, "category")
	}
	return fields
}

// terms splits a raw query into the substrings a product may match. A
// blank query is rejected; in substring mode the query is matched as sent,
// surrounding whitespace included.
func (o SearchOptions) terms(query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if o.Mode == SearchTokens {
		return strings.Fields(query), nil
	}
	return []string{query}, nil
}

// normalizeCategories lower-cases, de-duplicates and sorts category values.
// Values that are not strings are skipped.
func normalizeCategories(values []interface{}) []string {
	seen := make(map[string]struct{}, len(values))
	categories := make([]string, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.ToLower(s)
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		categories = append(categories, s)
	}
	sort.Strings(categories)
	return categories
}
