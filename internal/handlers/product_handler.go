package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clothing-catalog/internal/cache"
	"clothing-catalog/internal/models"
	"clothing-catalog/internal/repository"
)

const (
	categoriesKey = "categories"

	msgEmptyQuery     = "Please provide a search query"
	msgNoItems        = "No items found"
	msgNoMatchingItem = "No matching items found"
)

type ProductHandler struct {
	repo  repository.Catalog
	cache *cache.Cache
	log   *zap.Logger
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// NewProductHandler wires the product endpoints. A nil cache disables caching.
func NewProductHandler(repo repository.Catalog, categories *cache.Cache, log *zap.Logger) *ProductHandler {
	if categories == nil {
		categories = cache.New(0)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ProductHandler{
		repo:  repo,
		cache: categories,
		log:   log,
	}
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	if cached, found := h.cache.GetValue(categoriesKey); found {
		c.JSON(http.StatusOK, CategoriesResponse{Categories: cached.([]string)})
		return
	}

	// an insert landing while storage is read must not be masked by this result
	gen := h.cache.Generation()
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.cache.SetIfGeneration(categoriesKey, categories, gen)
	c.JSON(http.StatusOK, CategoriesResponse{Categories: categories})
}

// GET /category/:name
func (h *ProductHandler) GetByCategory(c *gin.Context) {
	products, err := h.repo.FindByCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if len(products) == 0 {
		c.JSON(http.StatusOK, MessageResponse{Message: msgNoItems})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /search?query=
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if strings.TrimSpace(query) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgEmptyQuery})
		return
	}

	products, err := h.repo.Search(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if len(products) == 0 {
		c.JSON(http.StatusOK, MessageResponse{Message: msgNoMatchingItem})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /add
func (h *ProductHandler) AddProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.repo.InsertProduct(c.Request.Context(), &product); err != nil {
		respondError(c, h.log, err)
		return
	}

	// a new product may introduce a new category
	h.cache.Delete(categoriesKey)

	h.log.Info("product added",
		zap.String("id", product.ID.Hex()),
		zap.String("category", product.Category),
	)
	c.JSON(http.StatusCreated, CreatedResponse{
		Message: "Item added successfully",
		ID:      product.ID.Hex(),
	})
}

// GET /healthz
func (h *ProductHandler) Health(c *gin.Context) {
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		h.log.Warn("storage ping failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
