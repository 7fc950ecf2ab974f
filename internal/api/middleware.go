package api

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// NewEngine returns a gin engine with recovery, request logging and CORS installed.
func NewEngine(allowOrigin string) *gin.Engine {
	RegisterValidators()
	engine := gin.New()
	engine.Use(gin.Recovery(), RequestLogger(), CORS(allowOrigin))
	engine.GET("/health", Health)
	return engine
}

// RequestLogger tags each request with an id and logs it once it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		log.Printf("request method=%s path=%s status=%d duration_ms=%d request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
			id,
		)
	}
}

func CORS(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func logf(c *gin.Context, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if id := c.GetString(requestIDKey); id != "" {
		msg += " request_id=" + id
	}
	log.Print(msg)
}
