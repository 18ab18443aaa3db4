package adapters

import (
	"time"

	"health_backend/internal/feature/user/domain/entity"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	Name      string     `gorm:"size:255;not null"`
	Birthday  *time.Time `gorm:"type:date"`
	AvatarURL string     `gorm:"size:2048"`
	Email     string     `gorm:"size:100;uniqueIndex;not null"`
	Phone     *int64     `gorm:"uniqueIndex"`

	Password            *string `gorm:"size:255"`
	GoogleID            *string `gorm:"size:255"`
	FacebookID          *string `gorm:"size:255"`
	ResetPasswordToken  *string `gorm:"size:255"`
	ResetPasswordExpire *time.Time

	Status    string `gorm:"size:16;not null;default:active;check:chk_users_status,status IN ('active','inactive')"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// defaultColumns is the default read view. Credentials, reset tokens and
// timestamps are never selected.
var defaultColumns = []string{"id", "name", "birthday", "avatar_url", "email", "phone", "status"}

// ToEntity converts the GORM model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                  m.ID,
		Name:                m.Name,
		Birthday:            m.Birthday,
		AvatarURL:           m.AvatarURL,
		Email:               m.Email,
		Phone:               m.Phone,
		Password:            m.Password,
		GoogleID:            m.GoogleID,
		FacebookID:          m.FacebookID,
		ResetPasswordToken:  m.ResetPasswordToken,
		ResetPasswordExpire: m.ResetPasswordExpire,
		Status:              entity.UserStatus(m.Status),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// UserModelFromEntity converts a domain entity to a GORM model.
func UserModelFromEntity(u *entity.User) *UserModel {
	return &UserModel{
		ID:                  u.ID,
		Name:                u.Name,
		Birthday:            u.Birthday,
		AvatarURL:           u.AvatarURL,
		Email:               u.Email,
		Phone:               u.Phone,
		Password:            u.Password,
		GoogleID:            u.GoogleID,
		FacebookID:          u.FacebookID,
		ResetPasswordToken:  u.ResetPasswordToken,
		ResetPasswordExpire: u.ResetPasswordExpire,
		Status:              string(u.Status),
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

// patchColumns maps the non-nil fields of a patch to column updates.
func patchColumns(p entity.UserPatch) map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Birthday != nil {
		cols["birthday"] = *p.Birthday
	}
	if p.AvatarURL != nil {
		cols["avatar_url"] = *p.AvatarURL
	}
	if p.Email != nil {
		cols["email"] = *p.Email
	}
	if p.Phone != nil {
		cols["phone"] = *p.Phone
	}
	if p.Password != nil {
		cols["password"] = *p.Password
	}
	if p.GoogleID != nil {
		cols["google_id"] = *p.GoogleID
	}
	if p.FacebookID != nil {
		cols["facebook_id"] = *p.FacebookID
	}
	if p.ResetPasswordToken != nil {
		cols["reset_password_token"] = *p.ResetPasswordToken
	}
	if p.ResetPasswordExpire != nil {
		cols["reset_password_expire"] = *p.ResetPasswordExpire
	}
	if p.Status != nil {
		cols["status"] = string(*p.Status)
	}
	return cols
}
