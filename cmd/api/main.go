package main

import (
	"context"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/option"

	"vendora/internal/adapter/api"
	"vendora/internal/adapter/api/handler"
	apimiddleware "vendora/internal/adapter/api/middleware"
	"vendora/internal/adapter/api/router"
	"vendora/internal/adapter/repository"
	"vendora/internal/infrastructure/firebase"
	"vendora/internal/infrastructure/websocket"
	"vendora/internal/usecase"
	"vendora/pkg/config"
	"vendora/pkg/logger"
	"vendora/pkg/metrics"
	"vendora/pkg/response"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.LogLevel, cfg.Environment)
	response.SetProduction(cfg.IsProduction())

	ctx := context.Background()

	var opts []option.ClientOption
	if credsJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); credsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credsJSON)))
	} else if credsPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); credsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credsPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Fatal("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	productRepo := repository.NewFirestoreProductRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	convRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	messageRepo := repository.NewFirestoreMessageRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, userRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, productRepo, orderRepo)
	cartUseCase := usecase.NewCartUseCase(cartRepo, productRepo)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, cartRepo, productRepo)
	conversationUseCase := usecase.NewConversationUseCase(convRepo, messageRepo, userRepo, productRepo, wsManager)

	handler.Setup(userUseCase, categoryUseCase, productUseCase, reviewUseCase, cartUseCase, orderUseCase, conversationUseCase)
	handler.SetupHealthHandler()

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(metrics.Middleware())
	e.Use(apimiddleware.RateLimit(cfg.RateLimitPerMin))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	router.Setup(e, authMiddleware, adminMiddleware)

	wsHandler := handler.NewWebSocketHandler(wsManager, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	logger.Info("starting server on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		logger.Fatal("server stopped: %v", err)
	}
}
