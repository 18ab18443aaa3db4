// Package middleware holds the gin middleware shared by every route.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"health_backend/internal/platform/apperror"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Title   string `json:"title"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

var tokenErrors = []error{
	jwt.ErrTokenMalformed,
	jwt.ErrTokenUnverifiable,
	jwt.ErrTokenSignatureInvalid,
	jwt.ErrTokenRequiredClaimMissing,
	jwt.ErrTokenInvalidAudience,
	jwt.ErrTokenExpired,
	jwt.ErrTokenUsedBeforeIssued,
	jwt.ErrTokenInvalidIssuer,
	jwt.ErrTokenInvalidSubject,
	jwt.ErrTokenNotValidYet,
	jwt.ErrTokenInvalidId,
	jwt.ErrTokenInvalidClaims,
}

func isTokenError(err error) bool {
	for _, target := range tokenErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Classify maps any error to the envelope sent to the client. The first
// matching kind wins: storage constraint, token failure, input error,
// existing envelope, then 500.
func Classify(err error) *apperror.ErrorResponse {
	var constraint *apperror.ConstraintError
	if errors.As(err, &constraint) {
		return apperror.BadRequest(constraint.Error())
	}

	if isTokenError(err) {
		return apperror.Unauthorized(err.Error())
	}

	var input *apperror.InputError
	if errors.As(err, &input) {
		status := input.Code
		if status == 0 {
			status = http.StatusBadRequest
		}
		return apperror.New(input.Message, apperror.TitleBadRequest, status)
	}

	var env *apperror.ErrorResponse
	if errors.As(err, &env) {
		if env.Status == 0 {
			return apperror.New(env.Message, env.Title, http.StatusInternalServerError)
		}
		return env
	}

	return apperror.Internal(err.Error())
}

// ErrorHandler renders the last error attached to the context. In
// development the full error is logged first; other modes log nothing.
func ErrorHandler(log logrus.FieldLogger, development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		env := Classify(last.Err)
		if development {
			log.WithError(last.Err).WithFields(logrus.Fields{
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"status":     env.Status,
				"request_id": c.GetString(RequestIDKey),
			}).Error("request failed")
		}

		if c.Writer.Written() {
			return
		}
		c.AbortWithStatusJSON(env.Status, ErrorBody{
			Title:   env.Title,
			Status:  env.Status,
			Details: env.Message,
		})
	}
}
