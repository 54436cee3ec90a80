package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jewelry-service/config"
	"jewelry-service/controllers"
	"jewelry-service/database"
	"jewelry-service/events"
	"jewelry-service/pkg/apperrors"
	"jewelry-service/pkg/logger"
	"jewelry-service/repository"
	"jewelry-service/routes"
	"jewelry-service/services"
)

func main() {
	logger.Initialize(os.Getenv("APP_ENV"))
	defer zap.L().Sync()

	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}

	// --- 1. Infrastructure clients ---

	if err := database.ConnectWithConfig(cfg.MongoURL, cfg.MongoDB); err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			zap.L().Error("Failed to close MongoDB", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		zap.L().Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancel()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zap.L().Warn("Failed to parse REDIS_URL, falling back to default", zap.Error(err))
		redisOpts = &redis.Options{Addr: "redis:6379", DB: 0}
	}
	redisClient := redis.NewClient(redisOpts)

	presignClient := newPresignClient()

	var publisher services.EventPublisher
	if cfg.KafkaBrokers != "" {
		producer := events.NewProducer(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer producer.Close()
		publisher = producer
	} else {
		zap.L().Warn("KAFKA_BROKERS not set, checkout events disabled")
	}

	// --- 2. Dependency injection ---

	productRepo := repository.NewProductRepository(database.DB)
	variantRepo := repository.NewVariantRepository(database.DB)
	metalRepo := repository.NewMetalRepository(database.DB)
	diamondRepo := repository.NewDiamondRepository(database.DB)
	cartRepo := repository.NewCartRepository(database.DB)
	orderRepo := repository.NewOrderRepository(database.DB)
	wishlistRepo := repository.NewWishlistRepository(database.DB)
	catalogRepo := repository.NewCatalogRepository(database.DB)

	productService := services.NewProductService(productRepo)
	metalService := services.NewMetalService(metalRepo)
	diamondService := services.NewDiamondService(diamondRepo)
	variantService := services.NewVariantService(variantRepo, metalRepo, diamondRepo)
	cartService := services.NewCartService(cartRepo, productRepo, diamondRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, publisher)
	wishlistService := services.NewWishlistService(wishlistRepo)
	importService := services.NewImportService(catalogRepo)
	presignService := services.NewPresignService(presignClient, cfg.S3Bucket, cfg.S3Prefix, cfg.S3Endpoint, cfg.CloudfrontDomain)

	cache := controllers.NewCacheManager(redisClient)

	ctrls := routes.Controllers{
		Products:   controllers.NewProductController(productService, cache),
		Metals:     controllers.NewMetalController(metalService, cache),
		Diamonds:   controllers.NewDiamondController(diamondService),
		Variants:   controllers.NewVariantController(variantService),
		Carts:      controllers.NewCartController(cartService),
		Orders:     controllers.NewOrderController(orderService),
		Wishlists:  controllers.NewWishlistController(wishlistService),
		BulkImport: controllers.NewBulkImportHandler(importService, cache),
		Presign:    controllers.NewPresignedURLHandler(presignService),
	}

	// --- 3. HTTP server ---

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())

	routes.RegisterRoutes(r, ctrls)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		zap.L().Info("Jewelry service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// --- 4. Graceful shutdown ---

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down jewelry service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		zap.L().Error("Failed to close Redis", zap.Error(err))
	}

	zap.L().Info("Jewelry service stopped gracefully")
}

// newPresignClient builds an S3 presign client, honoring a custom endpoint
// for LocalStack-style setups.
func newPresignClient() *s3.PresignClient {
	awsRegion := os.Getenv("AWS_REGION")
	if awsRegion == "" {
		awsRegion = "us-east-1"
	}
	awsEndpoint := os.Getenv("AWS_ENDPOINT")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecret := os.Getenv("AWS_SECRET_ACCESS_KEY")

	cfgOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(awsRegion),
	}
	if awsAccessKey != "" || awsSecret != "" {
		cfgOpts = append(cfgOpts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecret, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(context.Background(), cfgOpts...)
	if err != nil {
		zap.L().Fatal("Failed to load AWS config", zap.Error(err))
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		if awsEndpoint != "" {
			o.BaseEndpoint = aws.String(awsEndpoint)
		}
	})
	return s3.NewPresignClient(s3Client)
}
