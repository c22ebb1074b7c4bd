package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsMatchByKind(t *testing.T) {
	err := NotFound("Media not found")
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.False(t, stderrors.Is(err, ErrUnauthorized))

	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, stderrors.Is(wrapped, ErrNotFound))

	e, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "Media not found", e.Message)
	assert.Equal(t, http.StatusNotFound, e.Status())
}

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:        http.StatusNotFound,
		KindUnauthorized:    http.StatusUnauthorized,
		KindValidation:      http.StatusBadRequest,
		KindConflict:        http.StatusConflict,
		KindOperationFailed: http.StatusInternalServerError,
		KindDependency:      http.StatusInternalServerError,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status())
	}
}

func TestDependencyKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Dependency("File not deleted", cause)
	assert.True(t, stderrors.Is(err, cause))
	assert.True(t, stderrors.Is(err, ErrDependency))
	assert.Equal(t, "File not deleted: connection refused", err.Error())
}
