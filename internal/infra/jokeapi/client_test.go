package jokeapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/infra"
	"voice-assistant/internal/infra/jokeapi"
)

func TestClient_RandomJoke(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/random_joke", r.URL.Path)
		w.Write([]byte(`{"id":1,"type":"general","setup":"Why...","punchline":"Because..."}`))
	}))
	defer server.Close()

	joke, err := jokeapi.NewClientWithURL(server.URL).RandomJoke(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Why...", joke.Setup)
	assert.Equal(t, "Because...", joke.Punchline)
}

func TestClient_RandomJokeMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"setup":"wrong shape"}]`))
	}))
	defer server.Close()

	_, err := jokeapi.NewClientWithURL(server.URL).RandomJoke(context.Background())
	assert.ErrorContains(t, err, "decoding response")

	server2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server2.Close()

	_, err = jokeapi.NewClientWithURL(server2.URL).RandomJoke(context.Background())
	assert.ErrorIs(t, err, infra.ErrEmptyPayload)
}

func TestClient_RandomJokeMissingPunchline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"type":"general","setup":"Why..."}`))
	}))
	defer server.Close()

	joke, err := jokeapi.NewClientWithURL(server.URL).RandomJoke(context.Background())
	assert.ErrorIs(t, err, infra.ErrEmptyPayload)
	assert.Nil(t, joke)
}
