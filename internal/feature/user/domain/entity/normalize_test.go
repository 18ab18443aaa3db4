package entity

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health_backend/internal/platform/apperror"
)

// TestNormalizeName title-cases each space-separated word.
func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two lower-case words", "john smith", "John Smith"},
		{"mixed case is reset", "sUPER aDMIN", "Super Admin"},
		{"single word", "alice", "Alice"},
		{"punctuation is not a boundary", "mary-jane o'neil", "Mary-jane O'neil"},
		{"double space keeps empty token", "ana  maria", "Ana  Maria"},
		{"non-ascii letters", "élodie núñez", "Élodie Núñez"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeName(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeName_RejectsDigits(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"john2", "4lice", "R2 D2"} {
		_, err := NormalizeName(in)

		var env *apperror.ErrorResponse
		require.True(t, errors.As(err, &env), in)
		assert.Equal(t, MsgNameHasDigit, env.Message)
		assert.Equal(t, http.StatusBadRequest, env.Status)
		assert.Equal(t, apperror.TitleBadRequest, env.Title)
	}
}

// TestNormalizeEmail lower-cases and rejects digits.
func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	got, err := NormalizeEmail("A@B.COM")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got)

	_, err = NormalizeEmail("user1@example.com")
	var env *apperror.ErrorResponse
	require.True(t, errors.As(err, &env))
	assert.Equal(t, MsgEmailHasDigit, env.Message)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestUserStatus_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusInactive.Valid())
	assert.False(t, UserStatus("ACTIVE").Valid())
}

func TestUserPatch_IsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, UserPatch{}.IsEmpty())
	status := StatusInactive
	assert.False(t, UserPatch{Status: &status}.IsEmpty())
}
