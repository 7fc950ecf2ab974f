package users

import (
	"log"
	"net/http"
	"strings"

	"quizboard/internal/api"
	"quizboard/internal/db"

	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Name string `json:"name" form:"name" binding:"required,notblank,max=255"`
}

var createUserMessages = api.BindMessages{
	"Name": {
		"required": "name is required",
		"notblank": "name is required",
		"max":      "name must be 255 characters or fewer",
	},
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.Find(c.Request.Context(), "id asc")
	if err != nil {
		api.InternalError(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req createUserRequest
	if !api.Bind(c, &req, createUserMessages, "request body must include a name") {
		return
	}
	user := db.User{Name: strings.TrimSpace(req.Name)}
	if err := s.users.Create(c.Request.Context(), &user); err != nil {
		api.InternalError(c, "create user", err)
		return
	}
	log.Printf("user created user_id=%d", user.ID)
	c.JSON(http.StatusCreated, user)
}
