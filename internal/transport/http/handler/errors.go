package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nurkanat-dev/lifelog/internal/domain"
)

const (
	errInternalServer = "Server error"
	errBadRequestBody = "Please fill in all fields"
)

// clientMessages maps domain errors to the exact strings the API
// contract promises. Anything absent here is an internal error.
var clientMessages = map[error]string{
	domain.ErrMissingFields:     "Please fill in all fields",
	domain.ErrPasswordTooShort:  "Password should be at least 6 characters long",
	domain.ErrDuplicateEmail:    "Email already exists",
	domain.ErrDuplicateUsername: "Username already exists",
	domain.ErrUserNotFound:      "User does not exist",
	domain.ErrWrongPassword:     "Incorrect Password!",
	domain.ErrMissingPostInput:  "Title and image are required",
	domain.ErrInvalidImage:      "Image must be valid base64 data",
}

// respondError is the single place errors become status codes. All
// client-caused failures are 400 on these routes (auth failures are 401
// but those terminate in the middleware); everything else is 500 with no
// internal detail leaked.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	for sentinel, message := range clientMessages {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusBadRequest, gin.H{"message": message})
			return
		}
	}

	logger.ErrorContext(c.Request.Context(), "request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
}
