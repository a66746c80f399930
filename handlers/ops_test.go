package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/store"
)

func TestHealth(t *testing.T) {
	rec := serve(Health, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestGetZone(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("eu-west-1a"))
	}))
	defer upstream.Close()

	rec := serve(NewZoneProxy(upstream.URL, upstream.Client()).GetZone, http.MethodGet, "/get-zone", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "eu-west-1a", rec.Body.String())
}

func TestGetZoneUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer upstream.Close()

	proxy := NewZoneProxy(upstream.URL, upstream.Client())
	_, err := proxy.Fetch(context.Background())
	assert.True(t, errors.Is(err, ErrUpstream))

	rec := serve(proxy.GetZone, http.MethodGet, "/get-zone", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
}

func TestGetZoneUnreachable(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	rec := serve(NewZoneProxy(url, nil).GetZone, http.MethodGet, "/get-zone", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHomeListsTodos(t *testing.T) {
	todos := store.NewMemory()
	desc := "<b>2 litres</b>"
	_, err := todos.Create(context.Background(), "Buy milk", &desc)
	require.NoError(t, err)

	rec := serve(Home(todos), http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "I am from server data: Yep, I am from server")
	assert.Contains(t, rec.Body.String(), "Buy milk")
	assert.Contains(t, rec.Body.String(), "&lt;b&gt;2 litres&lt;/b&gt;")
}

func TestHomeEmpty(t *testing.T) {
	rec := serve(Home(store.NewMemory()), http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nothing to do.")
}

func TestHomeStorageFailure(t *testing.T) {
	rec := serve(Home(brokenStore{}), http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
