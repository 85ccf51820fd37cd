package token

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticToken(t *testing.T) {
	tok, err := Static("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = Static("").Token(context.Background())
	assert.Error(t, err)
}

func TestClientFetchesAndCaches(t *testing.T) {
	requests := 0
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"token":"fetched-token"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "cred-1")

	for i := 0; i < 3; i++ {
		tok, err := client.Token(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fetched-token", tok)
	}
	assert.Equal(t, 1, requests, "token must be fetched once and cached")
	assert.Equal(t, "Bearer cred-1", gotAuth)
}

func TestClientInvalidateForcesRefetch(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"token":"fetched-token"}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")

	_, err := client.Token(context.Background())
	require.NoError(t, err)

	client.Invalidate()

	_, err = client.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}

func TestClientEmptyTokenPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"  "}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	_, err := client.Token(context.Background())
	assert.ErrorContains(t, err, "empty token")
}

func TestClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("nope"))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "")
	_, err := client.Token(context.Background())
	assert.ErrorContains(t, err, "status 403")
}

func TestClientWithoutEndpoint(t *testing.T) {
	client := NewClient("", "")
	_, err := client.Token(context.Background())
	assert.ErrorContains(t, err, "no token endpoint")
}
