package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nurkanat-dev/lifelog/internal/domain"
	"github.com/nurkanat-dev/lifelog/internal/metrics"
	"github.com/nurkanat-dev/lifelog/internal/repository"
)

// userKey is the gin context key the resolved *domain.User is stored under.
const userKey = "authUser"

const (
	msgTokenMissing = "Authorization Denied, Token Missing"
	msgTokenInvalid = "Authorization Denied, Invalid Token"
	msgUserNotFound = "Authorization Denied, User Not Found"
)

// tokenVerifier is the subset of the token service the middleware needs.
type tokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth validates a Bearer token, resolves it to a user, and attaches the
// user to the gin context. Any failure short-circuits with 401.
func Auth(tokens tokenVerifier, users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			reject(c, "missing", msgTokenMissing)
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		userID, err := tokens.Verify(rawToken)
		if err != nil {
			reject(c, "invalid", msgTokenInvalid)
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				logger.ErrorContext(c.Request.Context(), "auth user lookup", "error", err)
			}
			reject(c, "unresolved", msgUserNotFound)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func reject(c *gin.Context, reason, message string) {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

// UserFromContext returns the user attached by Auth. The bool is false
// only on routes that skipped the middleware.
func UserFromContext(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}
