package controllers

import (
	"net/http"

	apperrors "bookrental-admin/errors"
	"bookrental-admin/logger"
	"bookrental-admin/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	catalog   services.CatalogService
	cache     *CacheManager
	validator *RequestValidator
}

func NewProductController(catalog services.CatalogService, cache *CacheManager) *ProductController {
	return &ProductController{catalog: catalog, cache: cache, validator: NewRequestValidator()}
}

// GetProducts lists all products with collections populated, newest first.
func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := pc.cache.GetProductList(ctx); ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	products, err := pc.catalog.ListProducts(ctx)
	if err != nil {
		logger.Error(c, "Failed to fetch products", err)
		apperrors.HandleError(c, err)
		return
	}

	pc.cache.SetProductListAsync(products)
	c.JSON(http.StatusOK, products)
}

// CreateProduct creates a product and registers it on its collections.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	input, err := pc.validator.ParseProductRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough data to create a product"})
		return
	}

	product, err := pc.catalog.CreateProduct(c.Request.Context(), input)
	if err != nil {
		logger.Error(c, "Failed to create product", err)
		apperrors.HandleError(c, err)
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, product)
}

// GetProduct returns a product with its collections populated.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := pc.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates a product and syncs its collection membership.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	input, err := pc.validator.ParseProductRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough data to update product"})
		return
	}

	product, err := pc.catalog.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		logger.Error(c, "Failed to update product", err, zap.String("product_id", id.Hex()))
		apperrors.HandleError(c, err)
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, product)
}

// DeleteProduct deletes a product and detaches it from every collection.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := pc.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		logger.Error(c, "Failed to delete product", err, zap.String("product_id", id.Hex()))
		apperrors.HandleError(c, err)
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// GetRelatedProducts returns products sharing a category or collection.
func (pc *ProductController) GetRelatedProducts(c *gin.Context) {
	id, err := pc.validator.ParseObjectID(c, "productId")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	related, err := pc.catalog.RelatedProducts(c.Request.Context(), id)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, related)
}
