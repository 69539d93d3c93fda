package mathjs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/infra/mathjs"
)

func TestClient_Evaluate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/", r.URL.Path)
		assert.Equal(t, "2+2", r.URL.Query().Get("expr"))
		w.Write([]byte("4"))
	}))
	defer server.Close()

	result, err := mathjs.NewClientWithURL(server.URL).Evaluate(context.Background(), "2+2")
	require.NoError(t, err)
	assert.Equal(t, "4", result)
}

func TestClient_EvaluateInvalid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Error: Unexpected end of expression (char 3)"))
	}))
	defer server.Close()

	_, err := mathjs.NewClientWithURL(server.URL).Evaluate(context.Background(), "2+")
	assert.ErrorContains(t, err, "Unexpected end of expression")
}
