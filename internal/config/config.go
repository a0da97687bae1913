package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	StoreMongo = "mongo"
	StoreFile  = "file"

	SearchSubstring = "substring"
	SearchTokens    = "tokens"
)

type Config struct {
	MongoURI           string
	MongoDB            string
	ProductsCollection string
	BannersCollection  string
	Port               string

	Store       string
	CatalogFile string

	SearchMode            string
	SearchIncludeCategory bool
	CategoryCacheTTL      time.Duration

	LogMode string
	LogFile string

	// DotEnv reports whether a .env file was found and loaded.
	DotEnv    bool
	DotEnvErr error
}

// LoadConfig reads the environment, loading .env first when present.
func LoadConfig() *Config {
	cfg := &Config{}

	// Only local development ships a .env; deployed environments use plain env vars.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			cfg.DotEnvErr = err
		} else {
			cfg.DotEnv = true
		}
	}

	cfg.MongoURI = getEnv("MONGO_URI", "mongodb://localhost:27017/clothingDB")
	cfg.MongoDB = getEnv("MONGO_DB", "clothingDB")
	cfg.ProductsCollection = getEnv("MONGO_PRODUCTS_COLLECTION", "clothes")
	cfg.BannersCollection = getEnv("MONGO_BANNERS_COLLECTION", "banners")
	cfg.Port = getEnv("PORT", "5000")

	cfg.Store = strings.ToLower(getEnv("STORE", StoreMongo))
	if cfg.Store != StoreFile {
		cfg.Store = StoreMongo
	}
	cfg.CatalogFile = getEnv("CATALOG_FILE", "data/products.json")

	cfg.SearchMode = strings.ToLower(getEnv("SEARCH_MODE", SearchSubstring))
	if cfg.SearchMode != SearchTokens {
		cfg.SearchMode = SearchSubstring
	}
	cfg.SearchIncludeCategory = cast.ToBool(getEnv("SEARCH_INCLUDE_CATEGORY", "false"))

	ttl, err := cast.ToDurationE(getEnv("CATEGORY_CACHE_TTL", "30s"))
	if err != nil || ttl < 0 {
		ttl = 30 * time.Second
	}
	cfg.CategoryCacheTTL = ttl

	cfg.LogMode = getEnv("LOG_MODE", "development")
	cfg.LogFile = getEnv("LOG_FILE", "")

	return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}
