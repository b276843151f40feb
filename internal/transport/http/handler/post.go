package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/transport/http/middleware"
	"github.com/nurkanat-dev/lifelog/internal/usecase"
)

type postUsecaser interface {
	CreatePost(ctx context.Context, input usecase.CreatePostInput) (*domain.Post, error)
	ListPosts(ctx context.Context, userID string) ([]*domain.FeedPost, error)
}

type PostHandler struct {
	postUsecase postUsecaser
	logger      *slog.Logger
}

func NewPostHandler(postUsecase postUsecaser, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postUsecase: postUsecase,
		logger:      logger.With("component", "post_handler"),
	}
}

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

type feedPostResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Image     string            `json:"image"`
	User      domain.PublicUser `json:"user"`
	CreatedAt time.Time         `json:"createdAt"`
}

// POST /api/posts (authenticated)
// Accepts the image as a data-URI/base64 payload; 201 {message}.
func (h *PostHandler) Create(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization Denied, Token Missing"})
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Title and image are required"})
		return
	}

	_, err := h.postUsecase.CreatePost(c.Request.Context(), usecase.CreatePostInput{
		UserID:  user.ID,
		Title:   req.Title,
		Content: req.Content,
		Image:   req.Image,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully"})
}

// GET /api/posts (authenticated)
// Returns only the caller's posts, newest first, author embedded.
func (h *PostHandler) List(c *gin.Context) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization Denied, Token Missing"})
		return
	}

	posts, err := h.postUsecase.ListPosts(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out := make([]feedPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, feedPostResponse{
			ID:        p.ID,
			Title:     p.Title,
			Content:   p.Content,
			Image:     p.ImageURL,
			User:      p.Author,
			CreatedAt: p.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}
