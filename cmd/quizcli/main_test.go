package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReturnsErrors(t *testing.T) {
	t.Setenv("FLASHCARD_STUDENT", "")
	err := run(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-assignment")

	err = run([]string{"-assignment", "a1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FLASHCARD_STUDENT")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"code": 5, "msg": "not found"})
	}))
	defer srv.Close()
	t.Setenv("FLASHCARD_API", srv.URL)
	t.Setenv("FLASHCARD_STUDENT", "s1")

	err = run([]string{"-assignment", "a1"})
	var ae *apiError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, err.Error(), "load assignment")
	assert.Equal(t, http.StatusNotFound, ae.Status)

	assert.Error(t, run([]string{"-unknown"}))
}
