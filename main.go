package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/awsx"
	"github.com/montasssar/EcommerceSnazzyWear/config"
	"github.com/montasssar/EcommerceSnazzyWear/controllers"
	"github.com/montasssar/EcommerceSnazzyWear/database"
	"github.com/montasssar/EcommerceSnazzyWear/middleware"
	"github.com/montasssar/EcommerceSnazzyWear/models"
	"github.com/montasssar/EcommerceSnazzyWear/repository"
	"github.com/montasssar/EcommerceSnazzyWear/routes"
	"github.com/montasssar/EcommerceSnazzyWear/services"
)

const cartTTL = 30 * 24 * time.Hour

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// --- Infrastructure ---

	awsCfg, err := awsx.LoadAWSConfig(ctx)
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}
	ddbClient := dynamodb.NewFromConfig(awsCfg)
	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3Endpoint != ""
	})
	snsClient := sns.NewFromConfig(awsCfg)
	metrics := awsx.NewMetricsClient(awsCfg)

	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Payment{}); err != nil {
		zap.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.CartBackend == "redis" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zap.L().Fatal("Failed to connect to Redis", zap.Error(err))
		}
	}

	// --- Dependency injection ---

	var cartStore repository.CartStore
	if redisClient != nil {
		cartStore = repository.NewRedisCartStore(redisClient, cartTTL)
	} else {
		zap.L().Info("Using in-memory cart store")
		cartStore = repository.NewMemoryCartStore()
	}

	productRepo := repository.NewDynamoProductAdapter(ddbClient, cfg.ProductsTable)
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	tokenService := services.NewTokenService(cfg.JWTSecret, 24*time.Hour)
	authService := services.NewAuthService(userRepo, tokenService, cfg.AdminEmail)
	productService := services.NewProductService(productRepo)
	stripeService := services.NewStripeService(cfg.StripeSecretKey, cfg.StripeWebhookKey,
		cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	var publisher services.EventPublisher
	if cfg.CheckoutSNSTopicARN != "" {
		publisher = services.NewSNSPublisher(snsClient, cfg.CheckoutSNSTopicARN)
	}
	checkoutService := services.NewCheckoutService(stripeService, paymentRepo, cartStore,
		publisher, cfg.Currency)
	uploader := services.NewImageUploader(s3Client, cfg.S3Bucket, cfg.S3KeyPrefix, cfg.S3Endpoint)

	var cache *controllers.CacheManager
	if redisClient != nil {
		cache = controllers.NewCacheManager(redisClient)
	}

	ctrl := routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		Products: controllers.NewProductController(productService, cache),
		Cart:     controllers.NewCartController(cartStore),
		Checkout: controllers.NewCheckoutController(checkoutService, stripeService),
		Upload:   controllers.NewUploadController(uploader),
		Tokens:   tokenService,
	}

	// --- HTTP server ---

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// The SPA lives on another origin, so every browser call needs CORS.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(func(c *gin.Context) {
		reqCtx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(reqCtx)
		c.Next()
	})
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.MetricsMiddleware(metrics, "storefront"))

	routes.RegisterRoutes(r, ctrl)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Storefront starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}

	zap.L().Info("Storefront stopped gracefully")
}
