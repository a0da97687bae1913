package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"clothing-catalog/internal/cache"
	"clothing-catalog/internal/models"
	"clothing-catalog/internal/repository"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	catalog := repository.NewMemoryCatalog([]models.Product{
		{Name: "Denim Jacket", Description: "Classic blue denim", Category: "Men's Jackets"},
		{Name: "Linen Shirt", Description: "Breathable summer shirt", Category: "Shirts"},
		{Name: "Polo", Description: "Cotton polo with a shirt collar", Category: "shirts"},
		{Name: "Chinos", Description: "Slim fit trousers", Category: "Trousers"},
	}, repository.SearchOptions{})
	return NewRouter(catalog, cache.New(time.Minute), zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeProducts(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var products []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products), w.Body.String())
	return products
}

func productNames(products []map[string]interface{}) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		name, _ := p["name"].(string)
		names = append(names, name)
	}
	return names
}

func TestCategoriesAreLowerCasedAndPresent(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/categories", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"men's jackets", "shirts", "trousers"}, resp.Categories)

	for _, category := range resp.Categories {
		assert.Equal(t, strings.ToLower(category), category)
		w := do(t, r, http.MethodGet, "/category/"+url.PathEscape(category), "")
		assert.NotEmpty(t, decodeProducts(t, w))
	}
}

func TestCategoryIsCaseInsensitiveSubstring(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/category/jacket", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Denim Jacket"}, productNames(decodeProducts(t, w)))

	w = do(t, r, http.MethodGet, "/category/SHIRT", "")
	assert.Equal(t, []string{"Linen Shirt", "Polo"}, productNames(decodeProducts(t, w)))

	w = do(t, r, http.MethodGet, "/category/shoes", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"No items found"}`, w.Body.String())
}

func TestSearch(t *testing.T) {
	r := newTestRouter()

	for _, target := range []string{"/search", "/search?query="} {
		w := do(t, r, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}

	w := do(t, r, http.MethodGet, "/search?query=shirt", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Linen Shirt", "Polo"}, productNames(decodeProducts(t, w)))
}

func TestProductByID(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/product/not-hex", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/product/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	all := decodeProducts(t, do(t, r, http.MethodGet, "/products", ""))
	require.Len(t, all, 4)
	id := all[3]["id"].(string)

	w = do(t, r, http.MethodGet, "/product/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Chinos"`)
}

func TestAddedProductRoundTrip(t *testing.T) {
	r := newTestRouter()

	// prime the category cache
	do(t, r, http.MethodGet, "/categories", "")

	w := do(t, r, http.MethodPost, "/add", `{"name": "Red Scarf", "category": "Accessories"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	for _, target := range []string{"/products", "/category/accessories", "/search?query=scarf"} {
		w := do(t, r, http.MethodGet, target, "")
		assert.Contains(t, productNames(decodeProducts(t, w)), "Red Scarf", target)
	}

	w = do(t, r, http.MethodGet, "/product/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/categories", "")
	assert.Contains(t, w.Body.String(), `"accessories"`)
}

func TestBannerLifecycle(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodPost, "/banners", `{"category": "Shirts"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodGet, "/banners", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, r, http.MethodPost, "/banners", `{"category": "Shirts", "banner_url": "https://cdn/shirts.png"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/banners", `{"category": "Shirts", "banner_url": "https://cdn/new.png"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodGet, "/banners", "")
	assert.JSONEq(t, `[{"category":"Shirts","banner_url":"https://cdn/shirts.png"}]`, w.Body.String())
}

func TestHealthAndRequestID(t *testing.T) {
	r := newTestRouter()

	w := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
