package main

import (
	"log"
	"net/http"
	"strconv"

	"quizboard/internal/config"
	"quizboard/internal/db"
	"quizboard/internal/users"

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

	srv := users.New(conn, cfg)
	addr := ":" + strconv.Itoa(cfg.UserPort)
	log.Printf("user server listening on %s database=%s", addr, cfg.DatabaseType)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
