package main

import (
	"context"
	"log"

	"github.com/aislescan/aislescan-api/adapters/event"
	httpAdapter "github.com/aislescan/aislescan-api/adapters/http"
	"github.com/aislescan/aislescan-api/adapters/persistence"
	authUC "github.com/aislescan/aislescan-api/internal/application/usecase/auth"
	profileUC "github.com/aislescan/aislescan-api/internal/application/usecase/profile"
	scanUC "github.com/aislescan/aislescan-api/internal/application/usecase/scan"
	"github.com/aislescan/aislescan-api/internal/config"
	"github.com/aislescan/aislescan-api/pkg/auth"
	"github.com/aislescan/aislescan-api/pkg/logger"
	"github.com/aislescan/aislescan-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Aisle Scan API server...")

	if cfg.Otel.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "aisle-scan-api")
		if err != nil {
			appLogger.Fatal("Failed to initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect to Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("Cannot init Kafka producer", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool)
	scanRepo := persistence.NewPostgresScanRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use cases
	signupUseCase := authUC.NewSignupUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	verifyUseCase := authUC.NewVerifyTokenUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo)
	saveScanUseCase := scanUC.NewSaveScanUseCase(scanRepo, kafkaClient, appLogger)
	listScansUseCase := scanUC.NewListScansUseCase(scanRepo)
	getScanUseCase := scanUC.NewGetScanUseCase(scanRepo)
	scanStatsUseCase := scanUC.NewScanStatsUseCase(redisClient)

	// HTTP
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Logger:         appLogger,
		AuthHandler:    httpAdapter.NewAuthHandler(signupUseCase, loginUseCase),
		ProfileHandler: httpAdapter.NewProfileHandler(profileUseCase),
		ScanHandler:    httpAdapter.NewScanHandler(saveScanUseCase, listScansUseCase, getScanUseCase, scanStatsUseCase),
		HealthHandler:  httpAdapter.NewHealthHandler(dbPool),
		AuthMiddleware: httpAdapter.AuthMiddleware(verifyUseCase),
		CORSOrigins:    cfg.CORS.AllowedOrigins,
	})

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("Cannot run server", err)
	}
}
