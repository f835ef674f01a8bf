package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookcrossing/internal/bookcrossing/app/validation"
)

func fieldErrors(t *testing.T, err error) validation.ValidationErrors {
	t.Helper()

	var verrs validation.ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %v", err)
	return verrs
}

func TestRegisterInput(t *testing.T) {
	t.Run("valid input is normalized", func(t *testing.T) {
		in := validation.RegisterInput{Email: "  A@X.com ", Password: "pw1"}

		require.NoError(t, in.Validate())
		assert.Equal(t, "a@x.com", in.Email)
	})

	tests := []struct {
		name   string
		input  validation.RegisterInput
		fields map[string]string
	}{
		{
			name:   "missing both",
			input:  validation.RegisterInput{},
			fields: map[string]string{"email": "is required", "password": "is required"},
		},
		{
			name:   "bad email",
			input:  validation.RegisterInput{Email: "not-an-email", Password: "pw1"},
			fields: map[string]string{"email": "must be a valid email address"},
		},
		{
			name:   "short password",
			input:  validation.RegisterInput{Email: "a@x.com", Password: "pw"},
			fields: map[string]string{"password": "must be at least 3 characters"},
		},
		{
			name:   "long password",
			input:  validation.RegisterInput{Email: "a@x.com", Password: strings.Repeat("p", 73)},
			fields: map[string]string{"password": "must be at most 72 bytes"},
		},
		{
			name:   "multibyte password over byte limit",
			input:  validation.RegisterInput{Email: "a@x.com", Password: strings.Repeat("пароль", 7)},
			fields: map[string]string{"password": "must be at most 72 bytes"},
		},
		{
			name:   "email longer than column",
			input:  validation.RegisterInput{Email: longEmail(121), Password: "pw1"},
			fields: map[string]string{"email": "must be at most 120 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			verrs := fieldErrors(t, in.Validate())

			assert.Equal(t, validation.ValidationErrors(tt.fields), verrs)
		})
	}
}

func TestRegisterInputLimits(t *testing.T) {
	t.Run("email at column size", func(t *testing.T) {
		in := validation.RegisterInput{Email: longEmail(120), Password: "pw1"}

		require.NoError(t, in.Validate())
	})

	t.Run("multibyte password at byte limit", func(t *testing.T) {
		in := validation.RegisterInput{Email: "a@x.com", Password: strings.Repeat("пароль", 6)}

		require.NoError(t, in.Validate())
	})
}

// longEmail собирает корректный адрес длиной n символов.
func longEmail(n int) string {
	local := strings.Repeat("a", 60)
	return local + "@" + strings.Repeat("b", n-len(local)-len("@.com")) + ".com"
}

func TestLoginInput(t *testing.T) {
	in := validation.LoginInput{Email: "B@X.COM", Password: "x"}
	require.NoError(t, in.Validate())
	assert.Equal(t, "b@x.com", in.Email)

	empty := validation.LoginInput{}
	verrs := fieldErrors(t, empty.Validate())
	assert.Contains(t, verrs, "email")
	assert.Contains(t, verrs, "password")
}

func TestAddBookInput(t *testing.T) {
	t.Run("trimmed", func(t *testing.T) {
		in := validation.AddBookInput{Title: "  Dune ", Author: "Herbert  "}

		require.NoError(t, in.Validate())
		assert.Equal(t, "Dune", in.Title)
		assert.Equal(t, "Herbert", in.Author)
	})

	t.Run("blank title", func(t *testing.T) {
		in := validation.AddBookInput{Title: "   ", Author: "Herbert"}

		verrs := fieldErrors(t, in.Validate())
		assert.Equal(t, "is required", verrs["title"])
		assert.NotContains(t, verrs, "author")
	})

	t.Run("too long", func(t *testing.T) {
		in := validation.AddBookInput{Title: strings.Repeat("т", 101), Author: strings.Repeat("a", 100)}

		verrs := fieldErrors(t, in.Validate())
		assert.Equal(t, "must be at most 100 characters", verrs["title"])
		assert.NotContains(t, verrs, "author")
	})
}

func TestValidationErrors_Error(t *testing.T) {
	err := validation.ValidationErrors{"title": "is required", "author": "is required"}

	assert.Equal(t, "validation failed: author: is required; title: is required", err.Error())
}
