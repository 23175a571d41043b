package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/repository"
	"github.com/montasssar/EcommerceSnazzyWear/services"
)

type ProductController struct {
	service services.ProductService
	cache   *CacheManager
}

func NewProductController(service services.ProductService, cache *CacheManager) *ProductController {
	return &ProductController{service: service, cache: cache}
}

// GetProducts returns the full catalog.
func (pc *ProductController) GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if pc.cache != nil {
		if products, ok := pc.cache.GetProductList(ctx); ok {
			c.JSON(http.StatusOK, products)
			return
		}
	}

	products, err := pc.service.ListProducts(ctx)
	if err != nil {
		zap.L().Error("Error fetching products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	if pc.cache != nil {
		pc.cache.SetProductListAsync(products)
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns a single catalog record by id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := pc.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Failed to fetch product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct validates the payload shape and persists a new product.
// The response carries the server-assigned id and timestamps.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
		return
	}

	product, ok := ValidateProductPayload(raw)
	if !ok {
		zap.L().Warn("Rejected malformed product payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
		return
	}

	created, err := pc.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		zap.L().Error("Failed to create product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product"})
		return
	}

	if pc.cache != nil {
		pc.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, created)
}

// UpdateProduct replaces the client-editable fields of an existing product.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
		return
	}

	product, ok := ValidateProductPayload(raw)
	if !ok {
		zap.L().Warn("Rejected malformed product payload", zap.String("id", id))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
		return
	}

	updated, err := pc.service.UpdateProduct(c.Request.Context(), id, product)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		zap.L().Error("Failed to update product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	if pc.cache != nil {
		pc.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
}

// DeleteProduct removes a product for good. There is no soft delete in the
// catalog; deleting an unknown id still reports success.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	if err := pc.service.DeleteProduct(c.Request.Context(), id); err != nil {
		zap.L().Error("Failed to delete product", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	if pc.cache != nil {
		pc.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
