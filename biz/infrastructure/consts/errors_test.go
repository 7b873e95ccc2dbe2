package consts

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrnoHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrNotFound.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, ErrDeadlinePassed.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, ErrInvalidScore.HTTPStatus())
	assert.Equal(t, http.StatusConflict, ErrAlreadySubmitted.HTTPStatus())
	assert.Equal(t, http.StatusForbidden, ErrNotClassOwner.HTTPStatus())
	assert.Equal(t, http.StatusUnauthorized, ErrNotAuthentication.HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, ErrRateLimited.HTTPStatus())
	assert.Equal(t, http.StatusInternalServerError, ErrSubmit.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, ErrCreateClass.HTTPStatus())
	assert.Equal(t, http.StatusBadRequest, ErrUpdate.HTTPStatus())
}

func TestErrnoGRPCStatus(t *testing.T) {
	st, ok := status.FromError(ErrAlreadySubmitted)
	assert.True(t, ok)
	assert.Equal(t, codes.AlreadyExists, st.Code())
	assert.Equal(t, "already submitted", st.Message())
}
