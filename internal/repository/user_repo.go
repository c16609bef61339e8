package repository

import (
	"context"
	"fmt"

	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/supabase"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	store Store
}

// NewUserRepo creates a new user repository
func NewUserRepo(store Store) UserRepository {
	return &userRepo{store: store}
}

// FindByName returns the first user with the given name, or nil if there is none
func (r *userRepo) FindByName(ctx context.Context, name string) (*models.User, error) {
	return r.findOne(ctx, "find user by name", supabase.NewQuery().Eq("userName", name))
}

// FindByCredentials returns the user whose name and stored password both match
func (r *userRepo) FindByCredentials(ctx context.Context, name, password string) (*models.User, error) {
	q := supabase.NewQuery().Eq("userName", name).Eq("password", password)
	return r.findOne(ctx, "find user by credentials", q)
}

// Create inserts a user and returns the stored row echoed by the store.
// A uniqueness violation reported by the store becomes a ConflictError.
func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var stored []models.User
	if err := r.store.Insert(ctx, TableUsers, user, &stored); err != nil {
		if isConflict(err) {
			return nil, &models.ConflictError{Message: "Username already exists"}
		}
		return nil, remoteError("insert user", err)
	}
	if len(stored) == 0 {
		return nil, remoteError("insert user", fmt.Errorf("no row returned"))
	}
	return &stored[0], nil
}

func (r *userRepo) findOne(ctx context.Context, op string, q *supabase.Query) (*models.User, error) {
	var users []models.User
	if err := r.store.Select(ctx, TableUsers, q.Limit(1), &users); err != nil {
		return nil, remoteError(op, err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}
