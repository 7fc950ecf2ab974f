package quiz

import (
	"net/http"

	"quizboard/internal/api"
	"quizboard/internal/config"
	"quizboard/internal/db"

	"gorm.io/gorm"
)

type Server struct {
	games *db.GameStore
	cache gameCache
	ws    *wsHub
	cfg   config.Config
}

// New builds the quiz server. A nil cache disables read caching.
func New(conn *gorm.DB, cache gameCache, cfg config.Config) *Server {
	if cache == nil {
		cache = noopCache{}
	}
	return &Server{
		games: db.NewGameStore(conn),
		cache: cache,
		ws:    newWSHub(),
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	engine := api.NewEngine(s.cfg.CORSAllowOrigin)
	engine.POST("/new", s.handleCreateGame)
	engine.GET("/game/:gameId", s.handleGetGame)
	engine.GET("/game/:gameId/:index", s.handleQuestionCount)
	engine.GET("/ws/game/:gameId", s.handleWebsocket)
	return engine
}
