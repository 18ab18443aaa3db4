// Package usecase implements the business logic for the user feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned by repositories when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
)
