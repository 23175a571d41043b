package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/montasssar/EcommerceSnazzyWear/controllers"
	"github.com/montasssar/EcommerceSnazzyWear/middleware"
)

// Controllers bundles everything the router needs.
type Controllers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Upload   *controllers.UploadController
	Tokens   middleware.TokenValidator
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public auth routes. The credential endpoints are rate limited per IP:
	// 10 attempts a minute with a small burst.
	auth := r.Group("/api/auth")
	credentials := middleware.RateLimit(rate.Every(time.Minute/10), 5)
	{
		auth.POST("/register", credentials, ctrl.Auth.Register)
		auth.POST("/login", credentials, ctrl.Auth.Login)
		auth.POST("/logout", ctrl.Auth.Logout)
	}

	// Stripe calls this directly; signature verification replaces auth.
	r.POST("/api/stripe/webhook", ctrl.Checkout.StripeWebhook)

	// Authenticated shopper routes
	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware(ctrl.Tokens))
	{
		authed.GET("/auth/me", ctrl.Auth.Me)

		cart := authed.Group("/cart")
		{
			cart.GET("", ctrl.Cart.GetCart)
			cart.POST("/items", ctrl.Cart.AddItem)
			cart.DELETE("/items/:product_id", ctrl.Cart.RemoveItem)
			cart.POST("/items/:product_id/increment", ctrl.Cart.IncrementItem)
			cart.POST("/items/:product_id/decrement", ctrl.Cart.DecrementItem)
			cart.DELETE("", ctrl.Cart.ClearCart)
		}

		authed.POST("/stripe", ctrl.Checkout.CreateSession)
	}

	// Admin routes: authenticated and role-gated
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(ctrl.Tokens), middleware.AdminOnly())
	{
		admin.GET("/products", ctrl.Products.GetProducts)
		admin.GET("/products/:id", ctrl.Products.GetProduct)
		admin.POST("/products", ctrl.Products.CreateProduct)
		admin.PATCH("/products/:id", ctrl.Products.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Products.DeleteProduct)

		admin.POST("/uploads", ctrl.Upload.UploadImage)
	}
}
