// package repositories provides credential persistence for user accounts.
package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStore registers and authenticates users.
type UserStore interface {
	// Register stores a new user with a salted hash of password.
	// Returns [shared.ErrConflict] when username is taken.
	Register(ctx context.Context, username, password string) (*models.User, error)

	// Authenticate checks password against the stored hash.
	// Returns [shared.ErrUnauthorized] when the user is missing or the password is wrong.
	Authenticate(ctx context.Context, username, password string) (*models.User, error)

	// Get returns the stored record or [shared.ErrUserNotFound].
	Get(ctx context.Context, username string) (*models.User, error)
}

// hashCost is the bcrypt work factor. Tests lower it.
var hashCost = bcrypt.DefaultCost

// validate rejects blank usernames and passwords.
func validate(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}
	return nil
}

// hashPassword hashes a plaintext password using bcrypt.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", shared.ErrInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// verify returns u when password matches its hash, [shared.ErrUnauthorized] otherwise.
func verify(u *models.User, password string) (*models.User, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrUnauthorized
	}
	return u, nil
}
