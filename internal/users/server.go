package users

import (
	"net/http"

	"quizboard/internal/api"
	"quizboard/internal/config"
	"quizboard/internal/db"

	"gorm.io/gorm"
)

type Server struct {
	users *db.Repository[db.User]
	cfg   config.Config
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		users: db.NewRepository[db.User](conn),
		cfg:   cfg,
	}
}

func (s *Server) Handler() http.Handler {
	engine := api.NewEngine(s.cfg.CORSAllowOrigin)
	engine.GET("/", s.handleListUsers)
	engine.POST("/", s.handleCreateUser)
	return engine
}
