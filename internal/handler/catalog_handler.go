package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ansamedicdent/catalog_api/internal/service"
	"github.com/ansamedicdent/catalog_api/internal/utils"
)

// CatalogHandler handles the public catalog endpoints.
type CatalogHandler struct {
	catalogService  *service.CatalogService
	defaultPageSize int
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(catalogService *service.CatalogService, defaultPageSize int) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, defaultPageSize: defaultPageSize}
}

// GetProducts returns the aggregated product list filtered by category and
// search term, sliced into pages.
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	categoryID := c.DefaultQuery("category", service.CategoryAll)
	search := c.Query("search")

	// pagination
	page := 1
	limit := h.defaultPageSize
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	filtered := h.catalogService.QueryProducts(c.Request.Context(), categoryID, search)
	result := service.Paginate(filtered, page, limit)

	utils.SuccessWithPagination(c, 200, "Products retrieved successfully", gin.H{
		"products": result.CurrentProducts,
	}, page, limit, len(filtered))
}

// GetFeaturedProducts returns the featured subset used for promotional
// placement. limit=0 returns every featured product.
func (h *CatalogHandler) GetFeaturedProducts(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	products := h.catalogService.GetFeaturedProducts(c.Request.Context(), limit)
	utils.Success(c, 200, "Featured products retrieved successfully", gin.H{
		"products": products,
	})
}

// GetProduct returns a single product by id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.catalogService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get product")
		return
	}

	utils.Success(c, 200, "Product retrieved successfully", gin.H{
		"product": product,
	})
}

// GetCategories returns the merged category list with assigned products.
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories := h.catalogService.GetAllCategories(c.Request.Context())
	utils.Success(c, 200, "Categories retrieved successfully", gin.H{
		"categories": categories,
	})
}
