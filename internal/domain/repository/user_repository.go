// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"scribe/internal/domain/entity"
	"scribe/internal/errors"
)

var (
	// ErrUserNotFound is returned when no user matches a name.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
	// ErrConstraint is returned when a write references a missing row or breaks a column rule.
	ErrConstraint = errors.New("constraint violation")
)

// User columns that may appear in a Changeset.
const (
	ColumnUserName     = "name"
	ColumnPasswordHash = "password_hash"
	ColumnSalt         = "salt"
	ColumnIterations   = "iterations"
	ColumnRole         = "role"
)

// UserRepository persists accounts keyed by name.
type UserRepository interface {
	// FindByName returns ErrUserNotFound when no row matches.
	FindByName(ctx context.Context, name string) (*entity.User, error)

	// List returns every user ordered by name.
	List(ctx context.Context) ([]*entity.User, error)

	// Create inserts user. It returns ErrDuplicate if the name is taken.
	Create(ctx context.Context, user *entity.User) error

	// Update applies changes to the user called name and returns the updated row.
	Update(ctx context.Context, name string, changes Changeset) (*entity.User, error)

	// Delete removes the user called name and returns the removed row.
	Delete(ctx context.Context, name string) (*entity.User, error)
}

// RoleRepository maintains the roles lookup table.
type RoleRepository interface {
	// Ensure inserts any of roles that are missing and returns the ones it created.
	Ensure(ctx context.Context, roles []entity.Role) ([]entity.Role, error)
}
