package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"flashcard-show/biz/infrastructure/consts"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"deadline", consts.ErrDeadlinePassed, http.StatusBadRequest, "deadline passed"},
		{"duplicate", consts.ErrAlreadySubmitted, http.StatusConflict, "already submitted"},
		{"not found", consts.ErrNotFound, http.StatusNotFound, "not found"},
		{"unauthenticated", consts.ErrNotAuthentication, http.StatusUnauthorized, "not authentication"},
		{"business code", consts.ErrCreateClass, http.StatusBadRequest, "create class failed"},
		{"wrapped", errors.Join(errors.New("ctx"), consts.ErrForbidden), http.StatusForbidden, "forbidden"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rc := app.NewContext(0)
			PostProcess(context.Background(), rc, nil, nil, c.err)
			assert.Equal(t, c.status, rc.Response.StatusCode())
			var body map[string]any
			require.NoError(t, json.Unmarshal(rc.Response.Body(), &body))
			assert.Equal(t, c.msg, body["msg"])
		})
	}

	rc := app.NewContext(0)
	PostProcessCreated(context.Background(), rc, nil, map[string]any{"submitted": true}, nil)
	assert.Equal(t, http.StatusCreated, rc.Response.StatusCode())
	assert.JSONEq(t, `{"submitted":true}`, string(rc.Response.Body()))
}
