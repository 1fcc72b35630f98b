package main

import (
	"context" // context package is needed for Redis operations

	"bank_system/internal/api"     // HTTP handlers and routes
	"bank_system/internal/audit"   // Audit journal
	"bank_system/internal/auth"    // User registry
	"bank_system/internal/cache"   // Read cache
	"bank_system/internal/config"  // Custom package for configuration
	"bank_system/internal/db"      // Database connection and migration
	"bank_system/internal/ledger"  // Ledger engine
	"bank_system/internal/session" // Session tokens
	"bank_system/internal/store"   // Account storage

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}

	// Redis is optional; without it every read goes to the database
	readCache, err := cache.FromConfig(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	journal := audit.New(gdb)
	users, err := auth.NewStore(gdb, cfg.BcryptCost)
	if err != nil {
		logrus.Fatalf("failed to prepare user store: %v", err)
	}
	sessions, err := session.NewManager(users, journal, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logrus.Fatalf("failed to prepare sessions (is JWT_SECRET set?): %v", err)
	}
	if _, err := sessions.Bootstrap(context.Background(), cfg.BootstrapAdminUser, cfg.BootstrapAdminPassword); err != nil {
		logrus.Fatalf("failed to bootstrap admin: %v", err)
	}

	engine := ledger.NewEngine(store.NewAccountStore(gdb), journal, ledger.Options{
		NumberAttempts: cfg.AccountNumberAttempts,
		Cache:          readCache,
		CacheTTL:       cfg.CacheTTL,
	})

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}
	r := api.NewRouter(api.Services{Engine: engine, Sessions: sessions, Audit: journal})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
