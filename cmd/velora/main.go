package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/velorahq/velora/internal/adapters/repo/mongodb"
	"github.com/velorahq/velora/internal/app"
)

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "velora"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, err := mongodb.Connect(ctx, mongoURI, mongoDB)
	cancel()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongodb.NewCartRepo(db).EnsureIndexes(indexCtx); err != nil {
		zlog.Fatal().Err(err).Msg("failed to ensure cart indexes")
	}
	cancel()

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			zlog.Warn().Err(err).Msg("redis unreachable, view invalidation disabled")
			rdb = nil
		}
		cancel()
	}

	application, err := app.NewApp(db, rdb)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create app")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           application.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info().Str("port", port).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)
	_ = db.Client().Disconnect(shutdownCtx)
	zlog.Info().Msg("shutdown complete")
}
