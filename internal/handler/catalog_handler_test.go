package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ansamedicdent/catalog_api/internal/models"
	"github.com/ansamedicdent/catalog_api/internal/service"
)

type fakeRemote struct {
	rows []models.RemoteProduct
	err  error
}

func (f *fakeRemote) ListProducts(ctx context.Context) ([]models.RemoteProduct, error) {
	return f.rows, f.err
}

type fakeStatic struct {
	cats []models.StaticCategory
}

func (f *fakeStatic) Categories() ([]models.StaticCategory, error) {
	return f.cats, nil
}

func (f *fakeStatic) Products() ([]models.Product, error) {
	var out []models.Product
	for _, cat := range f.cats {
		for _, p := range cat.Products {
			p.Category = cat.ID
			p.Source = models.SourceJSON
			out = append(out, p)
		}
	}
	return out, nil
}

type envelope struct {
	Success bool `json:"success"`
	Code    int  `json:"code"`
	Data    struct {
		Products   []models.Product  `json:"products"`
		Product    *models.Product   `json:"product"`
		Categories []models.Category `json:"categories"`
	} `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta struct {
		RequestID  string `json:"requestId"`
		Pagination *struct {
			Page       int `json:"page"`
			Limit      int `json:"limit"`
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	} `json:"meta"`
}

func setupRouter(t *testing.T, remote service.RemoteSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	staticSrc := &fakeStatic{cats: []models.StaticCategory{
		{
			ID:   "guantes",
			Name: "Guantes y Bioseguridad",
			Products: []models.Product{
				{ID: "g1", ImageURL: "g1.jpg", Name: "Guantes de Nitrilo", Description: "Caja x 100"},
				{ID: "g2", ImageURL: "g2.jpg", Name: "Mascarillas", Description: "Caja x 50", Featured: true},
			},
		},
	}}
	svc := service.NewCatalogService(remote, staticSrc, 2*time.Second)
	h := NewCatalogHandler(svc, 12)

	router := gin.New()
	router.GET("/v1/catalog/products", h.GetProducts)
	router.GET("/v1/catalog/products/featured", h.GetFeaturedProducts)
	router.GET("/v1/catalog/products/:id", h.GetProduct)
	router.GET("/v1/catalog/categories", h.GetCategories)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestGetProductsDefaults(t *testing.T) {
	router := setupRouter(t, &fakeRemote{rows: []models.RemoteProduct{{
		ID:              "r1",
		Categoria:       "Ortodoncia",
		NombreProducto:  "Alineador X",
		Descripcion:     "...",
		ImagenPrincipal: "img.jpg",
	}}})

	code, resp := doRequest(t, router, "/v1/catalog/products")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Products, 3)
	assert.Equal(t, "r1", resp.Data.Products[0].ID)

	require.NotNil(t, resp.Meta.Pagination)
	assert.Equal(t, 1, resp.Meta.Pagination.Page)
	assert.Equal(t, 12, resp.Meta.Pagination.Limit)
	assert.Equal(t, 3, resp.Meta.Pagination.TotalItems)
	assert.Equal(t, 1, resp.Meta.Pagination.TotalPages)
	assert.NotEmpty(t, resp.Meta.RequestID)
}

func TestGetProductsPagination(t *testing.T) {
	router := setupRouter(t, &fakeRemote{})

	code, resp := doRequest(t, router, "/v1/catalog/products?page=2&limit=1")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "g2", resp.Data.Products[0].ID)
	assert.Equal(t, 2, resp.Meta.Pagination.TotalPages)
}

func TestGetProductsSearchAndCategory(t *testing.T) {
	router := setupRouter(t, &fakeRemote{rows: []models.RemoteProduct{{
		ID:              "r1",
		Categoria:       "Ortodoncia",
		NombreProducto:  "Alineador X",
		Descripcion:     "...",
		ImagenPrincipal: "img.jpg",
	}}})

	_, resp := doRequest(t, router, "/v1/catalog/products?search=nitrilo")
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "g1", resp.Data.Products[0].ID)

	_, resp = doRequest(t, router, "/v1/catalog/products?category=ortodoncia")
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "r1", resp.Data.Products[0].ID)

	_, resp = doRequest(t, router, "/v1/catalog/products?search=xyz")
	assert.Empty(t, resp.Data.Products)
	assert.Equal(t, 0, resp.Meta.Pagination.TotalPages)
}

func TestGetProductsRemoteDownStillServes(t *testing.T) {
	router := setupRouter(t, &fakeRemote{err: context.DeadlineExceeded})

	code, resp := doRequest(t, router, "/v1/catalog/products")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data.Products, 2)
}

func TestGetFeaturedProducts(t *testing.T) {
	router := setupRouter(t, &fakeRemote{})

	code, resp := doRequest(t, router, "/v1/catalog/products/featured")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Data.Products, 1)
	assert.Equal(t, "g2", resp.Data.Products[0].ID)
}

func TestGetProductByID(t *testing.T) {
	router := setupRouter(t, &fakeRemote{})

	code, resp := doRequest(t, router, "/v1/catalog/products/g1")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Data.Product)
	assert.Equal(t, "Guantes de Nitrilo", resp.Data.Product.Name)

	code, resp = doRequest(t, router, "/v1/catalog/products/missing")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PRODUCT_NOT_FOUND", resp.Error.Code)
}

func TestGetCategories(t *testing.T) {
	router := setupRouter(t, &fakeRemote{rows: []models.RemoteProduct{{
		ID:              "r1",
		Categoria:       "Ortodoncia",
		NombreProducto:  "Alineador X",
		Descripcion:     "...",
		ImagenPrincipal: "img.jpg",
	}}})

	code, resp := doRequest(t, router, "/v1/catalog/categories")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Data.Categories, 2)
	assert.Equal(t, "guantes", resp.Data.Categories[0].ID)
	assert.Equal(t, "ortodoncia", resp.Data.Categories[1].ID)
}
