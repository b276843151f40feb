package repository

import (
	"context"

	"github.com/nurkanat-dev/lifelog/internal/domain"
)

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) (*domain.Post, error)
	// ListByUser returns the user's posts newest-first with the author embedded.
	ListByUser(ctx context.Context, userID string) ([]*domain.FeedPost, error)
	// ListImageKeys returns the object keys of every image referenced by a post.
	ListImageKeys(ctx context.Context) ([]string, error)
}
