package domain

import "errors"

// Sentinel errors for the whole backend. Handlers map these to HTTP
// status codes in exactly one place; everything below the transport
// layer deals in these values only.
var (
	// Validation failures (HTTP 400).
	ErrMissingFields    = errors.New("please fill in all fields")
	ErrPasswordTooShort = errors.New("password should be at least 6 characters long")
	ErrMissingPostInput = errors.New("title and image are required")
	ErrInvalidImage     = errors.New("image payload is not valid base64 data")

	// Conflicts (HTTP 400, matching the API contract).
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")

	// Auth failures (HTTP 400 on login, 401 on protected routes).
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("incorrect password")
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenSignature    = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token is expired")
)
