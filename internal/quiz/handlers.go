package quiz

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"quizboard/internal/api"
	"quizboard/internal/db"

	"github.com/gin-gonic/gin"
)

var createGameMessages = api.BindMessages{
	"Title": {
		"required": "title is required",
		"notblank": "title is required",
		"max":      "title must be 255 characters or fewer",
	},
	"Questions": {
		"required": "questions must be an array",
	},
	"Content": {
		"required": "question content is required",
		"notblank": "question content is required",
	},
	"Options": {
		"required": "question options must be an array",
	},
	"Index": {
		"required": "question index is required",
		"min":      "question index must be zero or greater",
	},
}

var pathMessages = api.BindMessages{
	"GameID": {
		"required": "gameId must be a positive integer",
		"min":      "gameId must be a positive integer",
	},
	"Index": {
		"min": "index must be zero or greater",
	},
}

const invalidGameBody = "request body must be a JSON object with a title and a questions array of {content, options, index}"

func (s *Server) handleCreateGame(c *gin.Context) {
	var req createGameRequest
	if !api.BindJSON(c, &req, createGameMessages, invalidGameBody) {
		return
	}
	questions := make([]db.NewQuestion, 0, len(req.Questions))
	for _, question := range req.Questions {
		questions = append(questions, db.NewQuestion{
			Content: question.Content,
			Options: question.Options,
			Index:   *question.Index,
		})
	}

	game, err := s.games.CreateGame(c.Request.Context(), strings.TrimSpace(req.Title), questions)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateIndex) {
			api.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		api.InternalError(c, "create game", err)
		return
	}
	log.Printf("game created game_id=%d questions=%d", game.ID, len(game.Questions))
	c.JSON(http.StatusCreated, gameSummary{ID: game.ID, Title: game.Title})
}

func (s *Server) handleGetGame(c *gin.Context) {
	var uri gameURI
	if !api.BindURI(c, &uri, pathMessages, "gameId must be a positive integer") {
		return
	}
	ctx := c.Request.Context()

	if view, ok, err := s.cache.Get(ctx, uri.GameID); err != nil {
		log.Printf("game cache read failed game_id=%d error=%v", uri.GameID, err)
	} else if ok {
		c.JSON(http.StatusOK, view)
		return
	}

	game, err := s.games.FindGame(ctx, uri.GameID)
	if err != nil {
		if errors.Is(err, db.ErrGameNotFound) {
			api.Error(c, http.StatusNotFound, err.Error())
			return
		}
		api.InternalError(c, "load game", err)
		return
	}
	view, err := renderGame(game)
	if err != nil {
		api.InternalError(c, "render game", err)
		return
	}
	if err := s.cache.Set(ctx, uri.GameID, view); err != nil {
		log.Printf("game cache write failed game_id=%d error=%v", uri.GameID, err)
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleQuestionCount(c *gin.Context) {
	var uri questionURI
	if !api.BindURI(c, &uri, pathMessages, "gameId and index must be integers") {
		return
	}
	question, err := s.games.IncrementQuestionCount(c.Request.Context(), uri.GameID, uri.Index)
	if err != nil {
		if errors.Is(err, db.ErrGameNotFound) || errors.Is(err, db.ErrQuestionNotFound) {
			api.Error(c, http.StatusNotFound, err.Error())
			return
		}
		api.InternalError(c, "increment question count", err)
		return
	}
	s.ws.Broadcast(question.GameID, countEvent{
		Type:       "count",
		GameID:     question.GameID,
		QuestionID: question.ID,
		Index:      question.Index,
		Count:      question.Count,
	})
	c.JSON(http.StatusOK, countResponse{Count: question.Count})
}

func renderGame(game *db.Game) (gameView, error) {
	view := gameView{
		Title:     game.Title,
		Questions: make([]questionView, 0, len(game.Questions)),
	}
	for _, question := range game.Questions {
		options, err := db.DecodeOptions(question.Options)
		if err != nil {
			return gameView{}, err
		}
		view.Questions = append(view.Questions, questionView{
			ID:      question.ID,
			Index:   question.Index,
			Content: question.Content,
			Options: options,
		})
	}
	return view, nil
}
