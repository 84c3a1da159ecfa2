package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mwilde/quill/internal/auth"
	"github.com/mwilde/quill/internal/config"
	"github.com/mwilde/quill/internal/store"
	"github.com/mwilde/quill/internal/web"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	mongoDB := mongoClient.Database(cfg.MongoDB)
	users := store.NewMongoUserStore(mongoDB)
	posts := store.NewMongoPostStore(mongoDB)

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	sessions := auth.NewRedisSessionStore(rdb)
	cookies := auth.NewCookieCodec(cfg.SessionSecret)

	// ── Views ────────────────────────────────────────────────
	views, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(users, sessions, cookies, views)
	postHandler := web.NewHandler(posts, views)

	// ── Router ───────────────────────────────────────────────
	r := web.NewRouter(authHandler, postHandler, cookies, sessions, users)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Server started on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
