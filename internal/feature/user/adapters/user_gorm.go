// Package adapters provides the GORM-backed repository for the user feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"health_backend/internal/feature/user/domain/entity"
	"health_backend/internal/feature/user/usecase"
	"health_backend/internal/platform/apperror"
)

// userGorm implements usecase.UserRepository on top of GORM.
type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a userGorm for the given connection.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// AutoMigrate creates or updates the users table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{})
}

// DropTables removes the users table if it exists.
func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(&UserModel{})
}

func (r *userGorm) view(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&UserModel{}).Select(defaultColumns)
}

func (r *userGorm) FindAll(ctx context.Context) ([]entity.User, error) {
	var rows []UserModel
	if err := r.view(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]entity.User, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out, nil
}

func (r *userGorm) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var m UserModel
	if err := r.view(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, translateError(err)
	}
	return m.ToEntity(), nil
}

func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	m := UserModelFromEntity(u)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return translateError(err)
	}
	u.ID, u.CreatedAt, u.UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	return nil
}

func (r *userGorm) CreateMany(ctx context.Context, users []*entity.User) error {
	if len(users) == 0 {
		return nil
	}
	ms := make([]*UserModel, 0, len(users))
	for _, u := range users {
		ms = append(ms, UserModelFromEntity(u))
	}
	if err := r.db.WithContext(ctx).Create(&ms).Error; err != nil {
		return translateError(err)
	}
	for i, m := range ms {
		users[i].ID, users[i].CreatedAt, users[i].UpdatedAt = m.ID, m.CreatedAt, m.UpdatedAt
	}
	return nil
}

// Update writes only the supplied columns. An empty patch touches nothing.
func (r *userGorm) Update(ctx context.Context, id int64, patch entity.UserPatch) error {
	cols := patchColumns(patch)
	if len(cols) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Updates(cols).Error
	return translateError(err)
}

// translateError wraps storage rejections caused by the written data in
// apperror.ConstraintError so the boundary reports them as 400.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return &apperror.ConstraintError{Err: err}
	}

	// SQLSTATE class 22 is data exception, 23 is integrity constraint violation.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23")) {
		return &apperror.ConstraintError{Err: err}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return &apperror.ConstraintError{Err: err}
	}

	return err
}
