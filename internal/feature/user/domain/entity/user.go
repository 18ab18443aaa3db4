// Package entity defines the domain entities for the user feature.
package entity

import "time"

// UserStatus is the lifecycle state of a user. Deleting a user only flips it to inactive.
type UserStatus string

const (
	StatusActive   UserStatus = "active"
	StatusInactive UserStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User represents a registered user.
// Password, OAuth identifiers and reset-token fields are only populated when
// they are explicitly read; the default view leaves them empty.
type User struct {
	ID        int64
	Name      string
	Birthday  *time.Time
	AvatarURL string
	Email     string
	Phone     *int64

	Password            *string
	GoogleID            *string
	FacebookID          *string
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time

	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserPatch holds normalized values for a partial update. Nil fields are left untouched.
type UserPatch struct {
	Name                *string
	Birthday            *time.Time
	AvatarURL           *string
	Email               *string
	Phone               *int64
	Password            *string
	GoogleID            *string
	FacebookID          *string
	ResetPasswordToken  *string
	ResetPasswordExpire *time.Time
	Status              *UserStatus
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p == UserPatch{}
}
