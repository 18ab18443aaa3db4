// Package dto defines the JSON shapes returned by the user endpoints.
package dto

import "health_backend/internal/feature/user/domain/entity"

// UserResponse is the default view of a user.
type UserResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Birthday  *string `json:"birthday"` // YYYY-MM-DD
	AvatarURL string  `json:"avatarURL"`
	Email     string  `json:"email"`
	Phone     *int64  `json:"phone"`
	Status    string  `json:"status"`
}

// UserListResponse wraps GET /users. Pagination values are fixed.
type UserListResponse struct {
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
	Users      []UserResponse `json:"users"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// NewUserResponse converts an entity to its response form.
func NewUserResponse(u *entity.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Email:     u.Email,
		Phone:     u.Phone,
		Status:    string(u.Status),
	}
	if u.Birthday != nil {
		b := u.Birthday.Format("2006-01-02")
		resp.Birthday = &b
	}
	return resp
}

// NewUserListResponse wraps users in the list envelope.
// TODO: compute total and total_pages from the repository once clients stop relying on the fixed values.
func NewUserListResponse(users []entity.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return UserListResponse{
		Page:       1,
		PerPage:    10,
		Total:      10,
		TotalPages: 1,
		Users:      out,
	}
}
