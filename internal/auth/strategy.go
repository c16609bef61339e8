// Package auth isolates how passwords are stored and checked so the
// comparison scheme can change without touching callers.
package auth

import (
	"context"
	"fmt"

	"github.com/lead-import-api/internal/models"
)

// Strategy names accepted by NewStrategy
const (
	StrategyPlaintext = "plaintext"
	StrategyArgon2    = "argon2"
)

// UserLookup is the read side of the user store a strategy needs
type UserLookup interface {
	FindByName(ctx context.Context, name string) (*models.User, error)
	FindByCredentials(ctx context.Context, name, password string) (*models.User, error)
}

// Strategy prepares passwords for storage and authenticates login attempts.
// Authenticate returns (nil, nil) when the credentials do not match.
type Strategy interface {
	Name() string
	PreparePassword(password string) (string, error)
	Authenticate(ctx context.Context, users UserLookup, name, password string) (*models.User, error)
}

// NewStrategy returns the strategy registered under name
func NewStrategy(name string) (Strategy, error) {
	switch name {
	case "", StrategyPlaintext:
		return Plaintext{}, nil
	case StrategyArgon2:
		return Argon2{}, nil
	default:
		return nil, fmt.Errorf("unknown password strategy %q", name)
	}
}

// Plaintext stores passwords unchanged and lets the store compare them.
// It matches rows created by earlier deployments of the service.
type Plaintext struct{}

func (Plaintext) Name() string { return StrategyPlaintext }

func (Plaintext) PreparePassword(password string) (string, error) {
	return password, nil
}

func (Plaintext) Authenticate(ctx context.Context, users UserLookup, name, password string) (*models.User, error) {
	return users.FindByCredentials(ctx, name, password)
}

// Argon2 stores Argon2id hashes and verifies them locally
type Argon2 struct{}

func (Argon2) Name() string { return StrategyArgon2 }

func (Argon2) PreparePassword(password string) (string, error) {
	return HashPassword(password)
}

func (Argon2) Authenticate(ctx context.Context, users UserLookup, name, password string) (*models.User, error) {
	user, err := users.FindByName(ctx, name)
	if err != nil || user == nil {
		return nil, err
	}

	ok, err := VerifyPassword(password, user.Password)
	if err != nil {
		// A row that does not hold a PHC string cannot match
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return user, nil
}
