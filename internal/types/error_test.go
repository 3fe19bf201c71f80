package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err  *CustomError
		code int
		typ  string
	}{
		{Validation("bad"), http.StatusBadRequest, TypeValidation},
		{Duplicate(errors.New("unique")), http.StatusBadRequest, TypeValidation},
		{MissingField("name"), http.StatusBadRequest, TypeValidation},
		{Unauthenticated("no"), http.StatusUnauthorized, TypeUnauthenticated},
		{Forbidden("no"), http.StatusForbidden, TypeForbidden},
		{NotFound("gone"), http.StatusNotFound, TypeNotFound},
		{InsufficientStock("Drill"), http.StatusBadRequest, TypeInsufficientStock},
		{StorageUnavailable(errors.New("down")), http.StatusInternalServerError, TypeStorageUnavailable},
		{Internal(errors.New("boom")), http.StatusInternalServerError, TypeInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, tt.err.Code, tt.err.Message)
		assert.Equal(t, tt.typ, tt.err.Type)
		assert.NotEmpty(t, tt.err.StackTrace())
	}

	assert.Equal(t, "Field 'name' is mandatory", MissingField("name").Message)
	assert.Equal(t, "Product Drill is not available in this quantity", InsufficientStock("Drill").Message)
}

func TestAsCustomError(t *testing.T) {
	nf := NotFound("Brand %d not found", 4)
	wrapped := fmt.Errorf("reading: %w", nf)
	assert.Same(t, nf, AsCustomError(wrapped))
	assert.True(t, IsType(wrapped, TypeNotFound))

	cause := errors.New("plain")
	ce := AsCustomError(cause)
	assert.Equal(t, TypeInternal, ce.Type)
	assert.ErrorIs(t, ce, cause)
}

func TestDuplicate(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: users.email")
	err := fmt.Errorf("creating user: %w", Duplicate(cause))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.True(t, IsType(err, TypeValidation))
	assert.Contains(t, AsCustomError(err).Unwrap().Error(), "users.email")
	assert.NotErrorIs(t, Validation("Email already in use"), ErrDuplicate)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Bad Request", Title(400))
	assert.Equal(t, "Forbidden", Title(403))
	assert.Equal(t, "Server Error", Title(503))
	assert.Equal(t, "Conflict", Title(409))
}
