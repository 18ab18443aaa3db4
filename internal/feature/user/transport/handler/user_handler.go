// Package handler provides the HTTP handlers for the user feature.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"health_backend/internal/feature/user/domain/entity"
	"health_backend/internal/feature/user/transport/http/dto"
	"health_backend/internal/platform/apperror"
)

// UserUsecase defines the user operations the handlers depend on.
type UserUsecase interface {
	GetAll(ctx context.Context) ([]entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, input map[string]any) (*entity.User, error)
	Update(ctx context.Context, id int64, input map[string]any) (*entity.User, error)
	SoftDelete(ctx context.Context, id int64) (string, error)
}

// UserHandler serves the /users routes. Failures are attached to the gin
// context and rendered by the error middleware.
type UserHandler struct {
	uc UserUsecase
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(uc UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetAll handles GET /users.
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.uc.GetAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserListResponse(users))
}

// FindByEmail handles GET /users/email/:email.
func (h *UserHandler) FindByEmail(c *gin.Context) {
	user, err := h.uc.FindByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	input, err := decodeBody(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	user, err := h.uc.Create(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	input, err := decodeBody(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	user, err := h.uc.Update(c.Request.Context(), id, input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// SoftDelete handles DELETE /users/:id.
func (h *UserHandler) SoftDelete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg, err := h.uc.SoftDelete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}

func bindID(c *gin.Context) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", c.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Required:      true,
	})
	if err != nil {
		return 0, &apperror.InputError{Message: "User id must be an integer", Code: http.StatusBadRequest}
	}
	return id, nil
}

// decodeBody reads the body as a JSON object. Numbers stay json.Number so
// integer checks see the literal. An empty body is an empty object; anything
// after the first value is rejected.
func decodeBody(c *gin.Context) (map[string]any, error) {
	input := map[string]any{}
	if c.Request.Body == nil {
		return input, nil
	}

	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return input, nil
		}
		return nil, &apperror.InputError{Message: "Request body must be valid JSON"}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &apperror.InputError{Message: "Request body must be valid JSON"}
	}
	if raw == nil {
		return input, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &apperror.InputError{Message: "Request body must be a JSON object"}
	}
	return obj, nil
}
