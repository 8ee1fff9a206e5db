package errorutil

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionDeniedStatusCodes(t *testing.T) {
	err := NewTransitionDenied("NOT_ASSIGNEE", "only the assignee", nil)
	domainErr := ToDomainError(err)
	assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	assert.Equal(t, "NOT_ASSIGNEE", domainErr.Code)

	err = NewTransitionDenied("ALREADY_TERMINAL", "already finished", nil)
	domainErr = ToDomainError(err)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)

	err = NewTransitionDenied("NOT_CLAIMABLE", "not claimable", nil)
	assert.Equal(t, http.StatusConflict, ToDomainError(err).HTTPStatus)
}

func TestStaleConflict(t *testing.T) {
	err := NewStaleConflict("snapshot out of date", map[string]any{"ticket_id": "t1"})
	domainErr := ToDomainError(err)
	assert.Equal(t, "STALE_SNAPSHOT", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	assert.Equal(t, "t1", domainErr.Details["ticket_id"])
}

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewNotFound("ticket", nil)
	domainErr := ToDomainError(original)
	require.NotNil(t, domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	domainErr := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.EqualError(t, errors.Unwrap(domainErr), "boom")
}
