package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/lucymaru126/montage/internal/router"
	"github.com/lucymaru126/montage/pkg/config"
	"github.com/lucymaru126/montage/pkg/firebase"
	"github.com/lucymaru126/montage/pkg/objectstore"
	"github.com/lucymaru126/montage/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	ctx := context.Background()

	// Initialize Firebase (optional, used for social login)
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}
	var firebaseAuthClient *auth.Client
	if firebaseApp != nil {
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// Initialize object storage (optional, used for media uploads)
	var store *objectstore.Store
	if cfg.S3Bucket != "" {
		store, err = objectstore.New(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
	} else {
		log.Println("Object storage not configured, uploads disabled.")
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, firebaseAuthClient, store, cfg.JWTSecret)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
