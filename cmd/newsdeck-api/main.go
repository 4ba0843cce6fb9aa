// Command newsdeck-api runs the newsdeck backend: an HTTP API for account
// registration, JWT login/refresh, and per-user smart-collection management,
// backed by Redis.
//
// Configuration is environment-only (a local .env file is honored):
//
//	ACCESS_SECRET              access-token signing secret (required)
//	REFRESH_SECRET             refresh-token signing secret (required, distinct)
//	REDIS_ADDR                 Redis address (default localhost:6379)
//	REDIS_PASSWORD             Redis password (default empty)
//	PORT                       listen port (default 8000)
//	CORS_ORIGIN                comma-separated allowed origins
//	NEWSDECK_ENABLE_SEED_ROUTES  mount the seed routes ("true"/"1")
//	NEWSDECK_AUDIT_LOG         emit audit events to stdout ("true"/"1")
package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	newsdeck "github.com/MrEthical07/newsdeck"
	"github.com/MrEthical07/newsdeck/httpapi"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if origin := strings.TrimRight(strings.TrimSpace(part), "/"); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	accessSecret := os.Getenv("ACCESS_SECRET")
	refreshSecret := os.Getenv("REFRESH_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		log.Fatal("ACCESS_SECRET and REFRESH_SECRET are required")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("redis unreachable")
	}

	cfg := newsdeck.DefaultConfig()
	cfg.JWT.AccessSecret = []byte(accessSecret)
	cfg.JWT.RefreshSecret = []byte(refreshSecret)

	builder := newsdeck.New().WithConfig(cfg).WithRedis(rdb)
	if envBool("NEWSDECK_AUDIT_LOG") {
		cfg.Audit.Enabled = true
		builder = builder.WithConfig(cfg).WithAuditSink(newsdeck.NewJSONWriterSink(os.Stdout))
	}

	engine, err := builder.Build()
	if err != nil {
		log.WithError(err).Fatal("engine build failed")
	}
	defer engine.Close()

	server := httpapi.NewServer(engine, log, httpapi.Config{
		AllowedOrigins:  splitOrigins(envOr("CORS_ORIGIN", "http://localhost:3000")),
		EnableDevRoutes: envBool("NEWSDECK_ENABLE_SEED_ROUTES"),
	})

	addr := ":" + envOr("PORT", "8000")
	log.WithField("addr", addr).Info("listening")
	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
