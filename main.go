package main

import (
	"context"
	"log"
	"time"

	"safaisync-be/classifier"
	"safaisync-be/config"
	"safaisync-be/controllers"
	"safaisync-be/geocode"
	"safaisync-be/imaging"
	"safaisync-be/middlewares"
	"safaisync-be/models"
	"safaisync-be/notify"
	"safaisync-be/routes"
	"safaisync-be/services"
	"safaisync-be/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, envFound := config.Load()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !envFound {
		logger.Info("No .env file found")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET environment variable is not set")
	}

	recordStore := openStore(cfg, logger)

	redisClient, err := config.ConnectRedis(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, submission rate limiting disabled", zap.Error(err))
	} else {
		defer redisClient.Close()
		logger.Info("Redis connection established successfully!")
	}

	var wasteClassifier controllers.WasteClassifier
	if cfg.OpenAIKey != "" {
		wasteClassifier = classifier.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	} else {
		logger.Warn("OPENAI_API_KEY not set, photo analysis disabled")
	}

	var addressResolver controllers.AddressResolver
	if cfg.MapsKey != "" {
		geocoder, err := geocode.NewGeocoder(cfg.MapsKey, logger)
		if err != nil {
			logger.Warn("Geocoder unavailable", zap.Error(err))
		} else {
			addressResolver = geocoder
		}
	} else {
		logger.Warn("MAPS_CREDENTIALS not set, reverse geocoding disabled")
	}

	var notifier services.Notifier
	if cfg.TwilioAccountSID != "" {
		notifier = notify.NewTwilioNotifier(notify.TwilioConfig{
			BaseURL:    cfg.TwilioBaseURL,
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioPhoneNumber,
			Timeout:    cfg.NotifyTimeout,
		}, logger)
	} else {
		logger.Warn("TWILIO_ACCOUNT_SID not set, driver alerts will only be logged")
		notifier = notify.NewLogNotifier(logger)
	}

	admin := &models.Admin{Password: cfg.AdminPassword}
	if err := admin.HashPassword(); err != nil {
		logger.Fatal("Failed to hash admin password", zap.Error(err))
	}

	svc := services.NewComplaintService(recordStore, notifier, imaging.NewCompressor(cfg.ImageMaxKB), logger)
	complaintController := controllers.NewComplaintController(svc, wasteClassifier, addressResolver, logger)
	adminController := controllers.NewAdminController(svc, admin, cfg.JWTSecret, cfg.Domain, cfg.IsProduction(), logger)

	r := routes.NewRouter(logger, cfg.CORSOrigins)
	routes.ComplaintRoutes(r, complaintController,
		middlewares.ComplaintRateLimiter(redisClient, cfg.ComplaintLimitQueue, cfg.ComplaintDailyLimit, logger))
	routes.AdminRoutes(r, adminController, middlewares.AdminAuth(cfg.JWTSecret, logger))

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// openStore returns the Mongo store when selected and reachable, otherwise
// the JSON files under DATA_DIR.
func openStore(cfg *config.Config, logger *zap.Logger) store.Store {
	if cfg.StoreDriver == "mongo" {
		_, db, err := config.ConnectDB(cfg)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			mongoStore := store.NewMongoStore(db)
			if err = mongoStore.EnsureIndexes(ctx); err == nil {
				logger.Info("MongoDB connection established successfully!")
				return mongoStore
			}
		}
		logger.Warn("MongoDB unavailable, falling back to JSON files", zap.Error(err))
	}

	jsonStore, err := store.NewJSONStore(cfg.DataDir)
	if err != nil {
		logger.Fatal("Failed to open data directory", zap.String("dir", cfg.DataDir), zap.Error(err))
	}
	return jsonStore
}
