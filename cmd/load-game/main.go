package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"quizboard/internal/config"
	"quizboard/internal/db"
)

func main() {
	filePath := flag.String("file", "questions.csv", "path to questions csv (index,content,options)")
	title := flag.String("title", "", "game title")
	flag.Parse()

	if strings.TrimSpace(*title) == "" {
		log.Fatal("game title is required")
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(conn); err != nil {
			log.Fatalf("database migration failed: %v", err)
		}
	}

	questions, err := db.ReadQuestionsCSV(*filePath)
	if err != nil {
		log.Fatalf("failed to read questions: %v", err)
	}

	game, err := db.NewGameStore(conn).CreateGame(context.Background(), strings.TrimSpace(*title), questions)
	if err != nil {
		log.Fatalf("failed to create game: %v", err)
	}
	log.Printf("loaded game game_id=%d questions=%d", game.ID, len(game.Questions))
}
