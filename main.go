package main

import (
	"os"

	"alota/ledger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

func main() {
	// Auto-load ./.env if present before reading vars.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	store, err := ledger.Open(ledger.Config{
		Path:   envOr("DB_PATH", "tenants.db"),
		DSN:    os.Getenv("DB_DSN"),
		Logger: sugar,
	})
	if err != nil {
		sugar.Fatalw("open store", "error", err)
	}
	if err := store.Migrate(); err != nil {
		sugar.Fatalw("migrate", "error", err)
	}
	if err := store.Seed(); err != nil {
		sugar.Fatalw("seed", "error", err)
	}

	// `./alota migrate` applies migrations and seeding then exits. Useful
	// for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		sugar.Info("migration and seeding completed")
		return
	}

	r := gin.Default()
	setupRoutes(r, store)

	addr := envOr("LISTEN_ADDR", ":8081")
	if err := r.Run(addr); err != nil {
		sugar.Fatalw("server exited", "error", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
