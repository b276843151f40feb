package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/metrics"
	"github.com/nurkanat-dev/lifelog/internal/repository"
	"github.com/nurkanat-dev/lifelog/internal/storage"
)

type PostUsecase struct {
	posts  repository.PostRepository
	images storage.ImageStore
}

func NewPostUsecase(posts repository.PostRepository, images storage.ImageStore) *PostUsecase {
	return &PostUsecase{posts: posts, images: images}
}

type CreatePostInput struct {
	UserID  string
	Title   string
	Content string
	// Image is a data-URI ("data:image/png;base64,...") or bare base64.
	Image string
}

// CreatePost decodes the image payload, uploads it to the image store,
// and persists the post with the resulting public URL.
func (u *PostUsecase) CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	if input.Title == "" || input.Image == "" {
		return nil, domain.ErrMissingPostInput
	}

	data, contentType, err := decodeImage(input.Image)
	if err != nil {
		return nil, domain.ErrInvalidImage
	}

	key := uuid.NewString() + extensionFor(contentType)
	url, err := u.images.Upload(ctx, key, data, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	post, err := u.posts.Create(ctx, &domain.Post{
		UserID:   input.UserID,
		Title:    input.Title,
		Content:  input.Content,
		ImageURL: url,
		ImageKey: key,
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	metrics.ImageUploadBytes.Observe(float64(len(data)))
	return post, nil
}

// ListPosts returns only the caller's posts, newest first.
func (u *PostUsecase) ListPosts(ctx context.Context, userID string) ([]*domain.FeedPost, error) {
	posts, err := u.posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// decodeImage accepts "data:<mime>;base64,<payload>" or a bare base64
// string and returns the raw bytes plus a content type.
func decodeImage(image string) ([]byte, string, error) {
	contentType := "image/jpeg"
	payload := image

	if strings.HasPrefix(image, "data:") {
		meta, rest, ok := strings.Cut(image[len("data:"):], ",")
		if !ok {
			return nil, "", fmt.Errorf("data uri has no payload")
		}
		if mime, _, _ := strings.Cut(meta, ";"); mime != "" {
			contentType = mime
		}
		payload = rest
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode base64: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty image payload")
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
