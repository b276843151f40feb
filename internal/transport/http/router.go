package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/nurkanat-dev/lifelog/internal/repository"
	"github.com/nurkanat-dev/lifelog/internal/token"
	"github.com/nurkanat-dev/lifelog/internal/transport/http/handler"
	"github.com/nurkanat-dev/lifelog/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	authHandler *handler.AuthHandler,
	postHandler *handler.PostHandler,
	tokens *token.Service,
	userRepo repository.UserRepository,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(tokens, userRepo, logger)

	// Public auth routes
	auth := r.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected post routes
	posts := r.Group("/api/posts", authMW)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.List)

	return r
}
