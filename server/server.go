// Package server wires the router and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "todo-api/docs"
	"todo-api/handlers"
	"todo-api/middlewares"
	"todo-api/store"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Store       store.TodoStore
	Zone        *handlers.ZoneProxy
	Logger      *slog.Logger
	CORSOrigins []string
}

// NewRouter returns the route table wrapped in logging, CORS and panic
// recovery. Preflight requests never match a route, so CORS sits outside mux.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var h http.Handler = routes(opts)
	h = middlewares.Recover(logger)(h)
	h = middlewares.CORS(opts.CORSOrigins)(h)
	h = middlewares.Logging(logger)(h)
	return h
}

func routes(opts Options) *mux.Router {
	todos := handlers.NewTodoHandler(opts.Store)

	r := mux.NewRouter()

	r.HandleFunc("/", handlers.Home(opts.Store)).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)
	r.HandleFunc("/get-zone", opts.Zone.GetZone).Methods(http.MethodGet)

	r.HandleFunc("/todos", todos.ListTodos).Methods(http.MethodGet)
	r.HandleFunc("/todos", todos.CreateTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/{id}", todos.GetTodo).Methods(http.MethodGet)
	r.HandleFunc("/todos/{id}", todos.UpdateTodo).Methods(http.MethodPatch)
	r.HandleFunc("/todos/{id}", todos.DeleteTodo).Methods(http.MethodDelete)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("successfully listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
