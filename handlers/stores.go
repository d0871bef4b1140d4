package handlers

import (
	"context"

	"blogapi/models"
)

// UserStore is the credential store the auth handlers talk to. An unknown
// email yields (nil, nil), not an error.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user models.User) error
}

// CategoryStore backs the category handlers. List returns categories
// ordered by name; NameTaken matches case-sensitively.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	NameTaken(ctx context.Context, name string) (bool, error)
	Insert(ctx context.Context, category models.Category) error
}

var users UserStore
var categories CategoryStore

// SetUserStore wires the credential store into the handler package.
func SetUserStore(s UserStore) {
	users = s
}

// SetCategoryStore wires the category store into the handler package.
func SetCategoryStore(s CategoryStore) {
	categories = s
}
