package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/middleware"
	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/repository"
)

// CartController exposes the shopper's cart. Every mutation responds with
// the full updated cart, so the client never needs a follow-up read.
type CartController struct {
	store repository.CartStore
}

func NewCartController(store repository.CartStore) *CartController {
	return &CartController{store: store}
}

func (cc *CartController) GetCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	cart, err := cc.store.Get(c.Request.Context(), userID)
	if err != nil {
		zap.L().Error("Failed to get cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

// AddItem merges the posted item into the cart (quantities add up for an
// existing product id).
func (cc *CartController) AddItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item"})
		return
	}

	cart, err := cc.store.AddItem(c.Request.Context(), userID, item)
	if err != nil {
		zap.L().Error("Failed to add cart item", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID := c.Param("product_id")

	cart, err := cc.store.RemoveItem(c.Request.Context(), userID, productID)
	if err != nil {
		zap.L().Error("Failed to remove cart item", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) IncrementItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID := c.Param("product_id")

	cart, err := cc.store.IncrementItem(c.Request.Context(), userID, productID)
	if err != nil {
		zap.L().Error("Failed to increment cart item", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) DecrementItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID := c.Param("product_id")

	cart, err := cc.store.DecrementItem(c.Request.Context(), userID, productID)
	if err != nil {
		zap.L().Error("Failed to decrement cart item", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (cc *CartController) ClearCart(c *gin.Context) {
	userID := middleware.GetUserID(c)

	if err := cc.store.Clear(c.Request.Context(), userID); err != nil {
		zap.L().Error("Failed to clear cart", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
