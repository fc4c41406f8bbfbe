package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jimiolaniyan/learnhub"
	"github.com/jimiolaniyan/learnhub/auth"
	"github.com/jimiolaniyan/learnhub/config"
	"github.com/jimiolaniyan/learnhub/logger"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongo connect", zap.Error(err))
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err = client.Ping(connectCtx, nil); err != nil {
		log.Fatal("mongo ping", zap.Error(err))
	}

	users := client.Database(cfg.MongoDB).Collection("users")
	courses := client.Database(cfg.MongoDB).Collection("courses")
	if err := learnhub.EnsureAccountIndexes(connectCtx, users); err != nil {
		log.Fatal("ensure indexes", zap.Error(err))
	}

	signer := auth.NewSigner([]byte(cfg.SigningKey), cfg.TokenTTL)
	svc := learnhub.NewService(
		learnhub.NewMongoAccountRepository(users),
		learnhub.NewMongoCourseRepository(courses),
		learnhub.NewPasswordHasher(cfg.BcryptCost, cfg.HashConcurrency),
		learnhub.NewTokenIssuer(signer),
		log,
	)

	server := &http.Server{
		Addr:              cfg.Address,
		Handler:           learnhub.NewRouter(svc, signer, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("server started", zap.String("addr", cfg.Address))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
}
