package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"health_backend/internal/feature/user/domain/entity"
	"health_backend/internal/platform/apperror"
)

// UserRepository abstracts persistence of users.
// Reads return the default view: credential and reset-token fields stay empty.
type UserRepository interface {
	// FindAll returns every user ordered by id.
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID returns ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail returns ErrUserNotFound when no row matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create inserts u and fills its id and timestamps.
	Create(ctx context.Context, u *entity.User) error

	// CreateMany inserts users in one batch.
	CreateMany(ctx context.Context, users []*entity.User) error

	// Update writes the non-nil fields of patch to the row with the given id.
	Update(ctx context.Context, id int64, patch entity.UserPatch) error
}

type userUsecase struct {
	users    UserRepository
	hashCost int
}

// NewUserUsecase creates a userUsecase backed by the given repository.
func NewUserUsecase(users UserRepository) *userUsecase {
	return &userUsecase{users: users, hashCost: bcrypt.DefaultCost}
}

func notFoundByID(id int64) error {
	return apperror.NotFound(fmt.Sprintf("User with id: %d not exist", id))
}

// findByID maps a missing row to the 404 envelope.
func (u *userUsecase) findByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, notFoundByID(id)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAll returns all users in the default view.
func (u *userUsecase) GetAll(ctx context.Context) ([]entity.User, error) {
	return u.users.FindAll(ctx)
}

// FindByEmail looks a user up by email. Stored emails are lower-case, so the
// lookup is too; the 404 message echoes the email as given.
func (u *userUsecase) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperror.NotFound(fmt.Sprintf("User with email: %s not exist", email))
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update and returns the reloaded user.
// The existence check runs before validation, so an unknown id is a 404 even
// when the body is invalid.
func (u *userUsecase) Update(ctx context.Context, id int64, input map[string]any) (*entity.User, error) {
	if _, err := u.findByID(ctx, id); err != nil {
		return nil, err
	}

	dto, err := NewUpdateUserDto(input)
	if err != nil {
		return nil, err
	}

	patch, err := u.patchFromDto(dto)
	if err != nil {
		return nil, err
	}

	if err := u.users.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return u.findByID(ctx, id)
}

// SoftDelete marks the user inactive. Deleting an inactive user succeeds again.
func (u *userUsecase) SoftDelete(ctx context.Context, id int64) (string, error) {
	if _, err := u.findByID(ctx, id); err != nil {
		return "", err
	}

	inactive := entity.StatusInactive
	if err := u.users.Update(ctx, id, entity.UserPatch{Status: &inactive}); err != nil {
		return "", err
	}
	if _, err := u.findByID(ctx, id); err != nil {
		return "", err
	}
	return fmt.Sprintf("User with id: %d was deleted", id), nil
}

// Create validates input, normalizes it and stores a new active user.
func (u *userUsecase) Create(ctx context.Context, input map[string]any) (*entity.User, error) {
	user, err := u.userFromInput(input)
	if err != nil {
		return nil, err
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return u.findByID(ctx, user.ID)
}

// BulkCreate validates every record first and inserts them in one batch.
// It returns the number of users stored.
func (u *userUsecase) BulkCreate(ctx context.Context, inputs []map[string]any) (int, error) {
	users := make([]*entity.User, 0, len(inputs))
	for i, input := range inputs {
		user, err := u.userFromInput(input)
		if err != nil {
			return 0, fmt.Errorf("user #%d: %w", i, err)
		}
		users = append(users, user)
	}
	if len(users) == 0 {
		return 0, nil
	}
	if err := u.users.CreateMany(ctx, users); err != nil {
		return 0, err
	}
	return len(users), nil
}

func (u *userUsecase) userFromInput(input map[string]any) (*entity.User, error) {
	dto, err := NewCreateUserDto(input)
	if err != nil {
		return nil, err
	}

	name, err := entity.NormalizeName(dto.Name)
	if err != nil {
		return nil, err
	}
	email, err := entity.NormalizeEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	password, err := u.hashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	birthday := dto.Birthday
	phone := dto.Phone
	return &entity.User{
		Name:       name,
		Birthday:   &birthday,
		AvatarURL:  dto.AvatarURL,
		Email:      email,
		Phone:      &phone,
		Password:   password,
		GoogleID:   dto.GoogleID,
		FacebookID: dto.FacebookID,
		Status:     entity.StatusActive,
	}, nil
}

// patchFromDto applies the write-time transforms to the supplied fields.
func (u *userUsecase) patchFromDto(dto *UpdateUserDto) (entity.UserPatch, error) {
	patch := entity.UserPatch{
		Birthday:            dto.Birthday,
		AvatarURL:           dto.AvatarURL,
		Phone:               dto.Phone,
		GoogleID:            dto.GoogleID,
		FacebookID:          dto.FacebookID,
		ResetPasswordToken:  dto.ResetPasswordToken,
		ResetPasswordExpire: dto.ResetPasswordExpire,
		Status:              dto.Status,
	}

	if dto.Name != nil {
		name, err := entity.NormalizeName(*dto.Name)
		if err != nil {
			return entity.UserPatch{}, err
		}
		patch.Name = &name
	}
	if dto.Email != nil {
		email, err := entity.NormalizeEmail(*dto.Email)
		if err != nil {
			return entity.UserPatch{}, err
		}
		patch.Email = &email
	}

	password, err := u.hashPassword(dto.Password)
	if err != nil {
		return entity.UserPatch{}, err
	}
	patch.Password = password
	return patch, nil
}

func (u *userUsecase) hashPassword(password *string) (*string, error) {
	if password == nil {
		return nil, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), u.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperror.BadRequest("Password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	h := string(hashed)
	return &h, nil
}
