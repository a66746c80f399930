package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"todo-api/handlers"
	"todo-api/models"
	"todo-api/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	zone := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "us-east-1b")
	}))
	t.Cleanup(zone.Close)

	srv := httptest.NewServer(NewRouter(Options{
		Store:       store.NewMemory(),
		Zone:        handlers.NewZoneProxy(zone.URL, zone.Client()),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		CORSOrigins: []string{"*"},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestTodoLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Contains(t, raw, "id")
	assert.Equal(t, "Buy milk", raw["title"])
	assert.Contains(t, raw, "description")
	assert.Nil(t, raw["description"])
	assert.Equal(t, false, raw["isDone"])

	var created models.Todo
	require.NoError(t, json.Unmarshal(body, &created))
	todoURL := srv.URL + "/todos/" + created.ID.String()

	resp, body = do(t, http.MethodGet, todoURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched models.Todo
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, created, fetched)

	resp, body = do(t, http.MethodPatch, todoURL, `{"isDone":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var patched models.Todo
	require.NoError(t, json.Unmarshal(body, &patched))
	assert.True(t, patched.IsDone)
	assert.Equal(t, "Buy milk", patched.Title)

	resp, body = do(t, http.MethodDelete, todoURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "deleted", string(body))

	resp, _ = do(t, http.MethodGet, todoURL, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, todoURL, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	srv := newTestServer(t)

	var ids []string
	for _, title := range []string{"one", "two", "three"} {
		resp, body := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var todo models.Todo
		require.NoError(t, json.Unmarshal(body, &todo))
		ids = append(ids, todo.ID.String())
	}
	do(t, http.MethodDelete, srv.URL+"/todos/"+ids[0], "")

	resp, body := do(t, http.MethodGet, srv.URL+"/todos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var todos []models.Todo
	require.NoError(t, json.Unmarshal(body, &todos))
	require.Len(t, todos, 2)
	assert.Equal(t, "two", todos[0].Title)
	assert.Equal(t, "three", todos[1].Title)
}

func TestOpsRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Healthy", string(body))

	resp, body = do(t, http.MethodGet, srv.URL+"/get-zone", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "us-east-1b", string(body))

	resp, _ = do(t, http.MethodGet, srv.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, http.MethodPut, srv.URL+"/todos/"+"00000000-0000-0000-0000-000000000000", `{"title":"x"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, addr, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "ok")
		}))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestEmptyDescriptionRoundTrip(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/todos", `{"title":"a","description":""}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "", raw["description"])

	resp, body = do(t, http.MethodGet, srv.URL+"/todos/"+raw["id"].(string), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw = nil
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Contains(t, raw, "description")
	assert.Equal(t, "", raw["description"])
}

func TestEveryAPIRouteIsDocumented(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	r := routes(Options{Store: store.NewMemory(), Zone: handlers.NewZoneProxy("http://127.0.0.1", nil)})
	err = r.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil || path == "/" {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, method := range methods {
			assert.Contains(t, doc.Paths[path], strings.ToLower(method), "%s %s has no swagger entry", method, path)
		}
		return nil
	})
	require.NoError(t, err)
}
