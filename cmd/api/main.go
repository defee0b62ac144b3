package main

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"neighbo/internal/adapter/api"
	"neighbo/internal/adapter/api/handler"
	apimiddleware "neighbo/internal/adapter/api/middleware"
	"neighbo/internal/adapter/api/router"
	"neighbo/internal/adapter/repository"
	"neighbo/internal/usecase"
	"neighbo/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.ServiceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	} else if cfg.ServiceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	restaurantRepo := repository.NewFirestoreRestaurantRepository(firestoreClient)
	valueRepo := repository.NewFirestoreValueRepository(firestoreClient)
	reportRepo := repository.NewFirestoreReportRepository(firestoreClient)
	claimRepo := repository.NewFirestoreClaimRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)

	restaurantUseCase := usecase.NewRestaurantUseCase(restaurantRepo, valueRepo)
	certificationUseCase := usecase.NewCertificationUseCase(restaurantRepo, valueRepo)
	reportUseCase := usecase.NewReportUseCase(reportRepo, restaurantRepo)
	claimUseCase := usecase.NewClaimUseCase(claimRepo, restaurantRepo, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo, restaurantRepo, reportRepo)
	valueUseCase := usecase.NewValueUseCase(valueRepo)

	handler.Setup(restaurantUseCase, certificationUseCase, reportUseCase, claimUseCase, userUseCase, valueUseCase)
	handler.SetupHealthHandler()

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CorsOrigin},
	}))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	ownershipMiddleware := apimiddleware.NewOwnershipMiddleware(userRepo)

	router.Setup(e, authMiddleware, ownershipMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
