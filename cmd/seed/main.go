// seed inserts demo users and posts into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "password123"

type userSpec struct {
	username string
	email    string
}

type postSpec struct {
	username string
	title    string
	content  string
}

var users = []userSpec{
	{"aidana", "aidana@test.local"},
	{"bjorn", "bjorn@test.local"},
	{"chiara", "chiara@test.local"},
}

var posts = []postSpec{
	{"aidana", "Morning run", "10k along the river before sunrise."},
	{"aidana", "Sourdough attempt #4", "Finally got the crumb right."},
	{"aidana", "Weekend hike", "Fog the whole way up, view for five minutes."},
	{"bjorn", "New desk setup", "Moved the monitor, twice the focus."},
	{"bjorn", "First pottery class", "Everything I made collapsed. Great fun."},
	{"chiara", "Stray cat update", "She has decided the balcony is hers now."},
}

func main() {
	ctx := context.Background()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("schema: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	postRepo := postgres.NewPostRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	ids := make(map[string]string, len(users))
	for _, u := range users {
		created, err := userRepo.Create(ctx, &domain.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
		})
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrDuplicateUsername) {
				existing, findErr := userRepo.FindByUsername(ctx, u.username)
				if findErr != nil {
					log.Fatalf("find existing user %s: %v", u.username, findErr)
				}
				ids[u.username] = existing.ID
				continue
			}
			log.Fatalf("create user %s: %v", u.username, err)
		}
		ids[u.username] = created.ID
		fmt.Printf("user %s (%s)\n", created.Username, created.Email)
	}

	for i, p := range posts {
		key := fmt.Sprintf("seed-%03d.jpg", i+1)
		created, err := postRepo.Create(ctx, &domain.Post{
			UserID:   ids[p.username],
			Title:    p.title,
			Content:  p.content,
			ImageURL: "https://picsum.photos/seed/" + key + "/600/400",
			ImageKey: key,
		})
		if err != nil {
			log.Fatalf("create post %q: %v", p.title, err)
		}
		fmt.Printf("post %q by %s (%s)\n", created.Title, p.username, created.ID)
	}

	fmt.Printf("done: %d users (password %q), %d posts\n", len(users), seedPassword, len(posts))
}
