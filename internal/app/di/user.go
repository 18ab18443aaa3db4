package di

import (
	"gorm.io/gorm"

	"health_backend/internal/feature/user/adapters"
	"health_backend/internal/feature/user/transport/handler"
	"health_backend/internal/feature/user/usecase"
)

// NewUserHandler wires repository, usecase and handler for the user feature.
func NewUserHandler(db *gorm.DB) *handler.UserHandler {
	repo := adapters.NewUserRepository(db)
	return handler.NewUserHandler(usecase.NewUserUsecase(repo))
}
