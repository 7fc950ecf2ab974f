package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"quizboard/internal/config"
	"quizboard/internal/db"
	"quizboard/internal/quiz"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	var srv *quiz.Server
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		cache, err := quiz.NewRedisCache(ctx, cfg.RedisURL, time.Duration(cfg.GameCacheTTLSeconds)*time.Second)
		cancel()
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer cache.Close()
		log.Printf("game cache enabled ttl_seconds=%d", cfg.GameCacheTTLSeconds)
		srv = quiz.New(conn, cache, cfg)
	} else {
		srv = quiz.New(conn, nil, cfg)
	}

	addr := ":" + strconv.Itoa(cfg.QuizPort)
	log.Printf("quiz server listening on %s database=%s", addr, cfg.DatabaseType)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
