package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
)

func TestOKWithData(t *testing.T) {
	data := map[string]string{"key": "value"}
	resp := OKWithData(data)

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Equal(t, data, resp.Data)
}

func TestOK(t *testing.T) {
	resp := OK()

	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestError(t *testing.T) {
	msg := "something went wrong"
	resp := Error(msg)

	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, msg, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestInternalError(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("production hides details", func(t *testing.T) {
		SetExposeErrors(false)

		resp := InternalError("failed to create post", cause)
		assert.Equal(t, StatusError, resp.Status)
		assert.Equal(t, "failed to create post", resp.Error)
	})

	t.Run("diagnostic mode exposes cause", func(t *testing.T) {
		SetExposeErrors(true)
		defer SetExposeErrors(false)

		resp := InternalError("failed to create post", cause)
		assert.Equal(t, "failed to create post: connection refused", resp.Error)
	})

	t.Run("nil error falls back to message", func(t *testing.T) {
		SetExposeErrors(true)
		defer SetExposeErrors(false)

		resp := InternalError("internal error", nil)
		assert.Equal(t, "internal error", resp.Error)
	})
}

func TestValidationError(t *testing.T) {
	type TestStruct struct {
		Email    string `validate:"required,email"`
		Category string `validate:"oneof=technology medicine"`
	}

	v := validator.New()
	ts := TestStruct{
		Email:    "not-an-email",
		Category: "politics",
	}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Email must be a valid email address")
	assert.Contains(t, resp.Error, "field Category has an unsupported value")
}

func TestValidationErrorRequired(t *testing.T) {
	type TestStruct struct {
		Title string `validate:"required"`
	}

	v := validator.New()
	ts := TestStruct{}

	err := v.Struct(ts)
	assert.Error(t, err)

	validationErrors := err.(validator.ValidationErrors)
	resp := ValidationError(validationErrors)

	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Title is a required field")
}
