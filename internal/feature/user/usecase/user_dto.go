package usecase

import (
	"time"

	"health_backend/internal/feature/user/domain/entity"
	"health_backend/internal/platform/validation"
)

const dateLayout = "2006-01-02"

// Rule messages shared by the create and update tables.
const (
	MsgNameString        = "Name must be a string"
	MsgNameLength        = "Name must be between 3 and 255 characters"
	MsgBirthdayFormat    = "Birthday must be in the format YYYY-MM-DD"
	MsgBirthdayISO       = "birthday must be a valid ISO 8601 date string"
	MsgAvatarURL         = "Avatar URL must be a valid URL"
	MsgEmail             = "Email must be a valid email address"
	MsgPhone             = "Phone number must be a valid number"
	MsgPassword          = "Password must be a string"
	MsgGoogleID          = "Google ID must be a string"
	MsgFacebookID        = "Facebook ID must be a string"
	MsgResetToken        = "Reset Password Token must be a string"
	MsgResetExpireFormat = "Reset Password Expire must be in the format YYYY-MM-DD"
	MsgResetExpireISO    = "resetPasswordExpire must be a valid ISO 8601 date string"
	MsgStatus            = "Status must be either ACTIVE or INACTIVE"
)

var (
	nameRules = []validation.Rule{
		{Check: validation.IsString, Message: MsgNameString},
		{Check: validation.Length(3, 255), Message: MsgNameLength},
	}
	birthdayRules = []validation.Rule{
		{Check: validation.Matches(validation.DatePattern), Message: MsgBirthdayFormat},
		{Check: validation.IsISO8601, Message: MsgBirthdayISO},
	}
	avatarURLRules = []validation.Rule{{Check: validation.IsURL, Message: MsgAvatarURL}}
	emailRules     = []validation.Rule{{Check: validation.IsEmail, Message: MsgEmail}}
	// phone is a BIGINT column, so fractional numbers are rejected here too.
	phoneRules = []validation.Rule{{Check: validation.IsInteger, Message: MsgPhone}}
)

func stringRule(msg string) []validation.Rule {
	return []validation.Rule{{Check: validation.IsString, Message: msg}}
}

// updateUserSchema: every field optional.
var updateUserSchema = validation.Schema{
	{Name: "name", Rules: nameRules},
	{Name: "birthday", Rules: birthdayRules},
	{Name: "avatarURL", Rules: avatarURLRules},
	{Name: "email", Rules: emailRules},
	{Name: "phone", Rules: phoneRules},
	{Name: "password", Rules: stringRule(MsgPassword)},
	{Name: "googleId", Rules: stringRule(MsgGoogleID)},
	{Name: "facebookId", Rules: stringRule(MsgFacebookID)},
	{Name: "resetPasswordToken", Rules: stringRule(MsgResetToken)},
	{Name: "resetPasswordExpire", Rules: []validation.Rule{
		{Check: validation.Matches(validation.DatePattern), Message: MsgResetExpireFormat},
		{Check: validation.IsISO8601, Message: MsgResetExpireISO},
	}},
	{Name: "status", Rules: []validation.Rule{
		{Check: validation.OneOf(string(entity.StatusActive), string(entity.StatusInactive)), Message: MsgStatus},
	}},
}

// createUserSchema: profile fields required, credentials optional.
var createUserSchema = validation.Schema{
	{Name: "name", Required: true, Rules: nameRules},
	{Name: "birthday", Required: true, Rules: birthdayRules},
	{Name: "avatarURL", Required: true, Rules: avatarURLRules},
	{Name: "email", Required: true, Rules: emailRules},
	{Name: "phone", Required: true, Rules: phoneRules},
	{Name: "password", Rules: stringRule(MsgPassword)},
	{Name: "googleId", Rules: stringRule(MsgGoogleID)},
	{Name: "facebookId", Rules: stringRule(MsgFacebookID)},
}

// UpdateUserDto holds the validated fields of a partial update. Nil means not supplied.
type UpdateUserDto struct {
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
	Status              *entity.UserStatus
}

// NewUpdateUserDto validates input and copies the supplied fields.
func NewUpdateUserDto(input map[string]any) (*UpdateUserDto, error) {
	if err := updateUserSchema.Validate(input); err != nil {
		return nil, err
	}

	dto := &UpdateUserDto{
		Name:                optString(input, "name"),
		Birthday:            optDate(input, "birthday"),
		AvatarURL:           optString(input, "avatarURL"),
		Email:               optString(input, "email"),
		Phone:               optInt64(input, "phone"),
		Password:            optString(input, "password"),
		GoogleID:            optString(input, "googleId"),
		FacebookID:          optString(input, "facebookId"),
		ResetPasswordToken:  optString(input, "resetPasswordToken"),
		ResetPasswordExpire: optDate(input, "resetPasswordExpire"),
	}
	if s := optString(input, "status"); s != nil {
		status := entity.UserStatus(*s)
		dto.Status = &status
	}
	return dto, nil
}

// CreateUserDto holds the validated fields of a new user.
type CreateUserDto struct {
	Name       string
	Birthday   time.Time
	AvatarURL  string
	Email      string
	Phone      int64
	Password   *string
	GoogleID   *string
	FacebookID *string
}

// NewCreateUserDto validates input and copies its fields.
func NewCreateUserDto(input map[string]any) (*CreateUserDto, error) {
	if err := createUserSchema.Validate(input); err != nil {
		return nil, err
	}

	return &CreateUserDto{
		Name:       *optString(input, "name"),
		Birthday:   *optDate(input, "birthday"),
		AvatarURL:  *optString(input, "avatarURL"),
		Email:      *optString(input, "email"),
		Phone:      *optInt64(input, "phone"),
		Password:   optString(input, "password"),
		GoogleID:   optString(input, "googleId"),
		FacebookID: optString(input, "facebookId"),
	}, nil
}

// The helpers below run after validation, so type assertions cannot fail
// for keys that are present.

func optString(input map[string]any, key string) *string {
	s, ok := input[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func optInt64(input map[string]any, key string) *int64 {
	v, ok := input[key]
	if !ok || v == nil {
		return nil
	}
	i, ok := validation.Int64(v)
	if !ok {
		return nil
	}
	return &i
}

func optDate(input map[string]any, key string) *time.Time {
	s := optString(input, key)
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
