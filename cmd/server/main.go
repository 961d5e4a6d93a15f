package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"scripture_site_echo/internal/config"
	"scripture_site_echo/internal/content"
	"scripture_site_echo/internal/handlers"
	authMiddleware "scripture_site_echo/internal/middleware"
	"scripture_site_echo/internal/services"
	"scripture_site_echo/internal/settings"
	"scripture_site_echo/internal/trivia"
	"scripture_site_echo/web/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize Database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = services.InitDB(cfg.DatabaseURL, !cfg.Production())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		// Run auto-migration
		if err := services.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
	} else {
		log.Println("Warning: DATABASE_URL not set, pages render with default settings")
	}

	// Initialize Redis
	var cache *services.RedisCache
	if cfg.RedisURL != "" {
		cache, err = services.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Redis connection failed: %v", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	store := settings.NewStore(db, cache, cfg.SettingsCacheTTL)

	library, err := content.Load()
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}
	bank, err := trivia.Load()
	if err != nil {
		log.Fatalf("Failed to load trivia questions: %v", err)
	}

	// Initialize Firebase
	var (
		verifier authMiddleware.SessionVerifier
		issuer   handlers.SessionIssuer
	)
	authClient, err := services.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Printf("Warning: Firebase initialization failed: %v", err)
		log.Println("Auth features will not work until valid credentials are provided")
	} else {
		verifier = authClient
		issuer = authClient
	}

	// Create Echo instance
	renderer, err := templates.NewTemplateRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = authMiddleware.NewErrorHandler(store)

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Static file serving
	e.Static("/static", cfg.StaticDir)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(store, library, bank)
	triviaHandler := handlers.NewTriviaHandler(bank)
	settingsHandler := handlers.NewSettingsHandler(store)
	authHandler := handlers.NewAuthHandler(issuer, store, handlers.FirebaseWebConfig{
		APIKey:     cfg.FirebaseAPIKey,
		AuthDomain: cfg.FirebaseAuthDomain,
		ProjectID:  cfg.FirebaseProjectID,
	}, cfg.Production())

	// Public routes
	e.GET("/", pageHandler.Home)
	e.GET("/articles", pageHandler.Articles)
	e.GET("/articles/:slug", pageHandler.Article)
	e.GET("/resources", pageHandler.Resources)
	e.GET("/resources/:slug", pageHandler.Resource)
	e.GET("/trivia", pageHandler.Trivia)
	e.GET("/about", pageHandler.About)
	e.GET("/login", authHandler.LoginPage)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)
	e.GET("/api/trivia/questions", triviaHandler.Questions)

	// Admin routes
	admin := e.Group("/admin")
	admin.Use(authMiddleware.RequireAuth(verifier))
	admin.Use(authMiddleware.RequireAdmin())
	admin.GET("", settingsHandler.SettingsPage)
	admin.POST("/settings", settingsHandler.SaveSettingForm)
	admin.POST("/settings/:key/delete", settingsHandler.DeleteSettingForm)
	admin.GET("/api/settings", settingsHandler.ListSettings)
	admin.PUT("/api/settings/:key", settingsHandler.PutSetting)
	admin.DELETE("/api/settings/:key", settingsHandler.DeleteSetting)
	admin.GET("/api/assets", settingsHandler.PreviewAssets)

	// Start server
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}
