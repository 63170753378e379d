package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/petism/backend/internal/mailer"
	"github.com/petism/backend/internal/router"
	"github.com/petism/backend/pkg/config"
	"github.com/petism/backend/pkg/firebase"
	"github.com/petism/backend/validators"

	firebaseauth "firebase.google.com/go/v4/auth"
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

	// Initialize Firebase when credentials are configured; the password
	// login flow works without it.
	var authClient *firebaseauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not configured, firebase login disabled.")
	}

	// Notification dispatcher
	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom, cfg.FrontendURL)

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, authClient, m, cfg)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
