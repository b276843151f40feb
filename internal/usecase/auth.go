package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/email"
	"github.com/nurkanat-dev/lifelog/internal/metrics"
	"github.com/nurkanat-dev/lifelog/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

// tokenIssuer is the subset of the token service the usecase needs.
type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	tokens tokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, tokens tokenIssuer, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Register creates the user with a bcrypt-hashed password and returns a
// fresh bearer token. The plaintext password never reaches the
// repository and is never logged.
func (u *AuthUsecase) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	if username == "" || email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}
	if len(password) < minPasswordLen {
		return nil, "", domain.ErrPasswordTooShort
	}

	// Pre-insert lookups give the friendly conflict message; the unique
	// indexes are what actually guarantee uniqueness under races.
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if _, err := u.users.FindByUsername(ctx, username); err == nil {
		return nil, "", domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", fmt.Errorf("check username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, "", err
	}

	tok, err := u.tokens.Issue(created.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	u.sendWelcome(ctx, created)
	metrics.RegistrationsTotal.Inc()

	return created, tok, nil
}

// Login verifies the password against the stored bcrypt hash and returns
// a fresh bearer token.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrMissingFields
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrWrongPassword
	}

	tok, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.Inc()
	return user, tok, nil
}

// sendWelcome is best-effort: a mail failure never fails the registration.
func (u *AuthUsecase) sendWelcome(ctx context.Context, user *domain.User) {
	subject := "Welcome to lifelog"
	body := fmt.Sprintf("<p>Hi %s, your lifelog account is ready.</p>", user.Username)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "error", err)
	}
}
