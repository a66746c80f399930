// @title           Todo API
// @version         1.0
// @description     CRUD API over todo records
// @host            localhost:8080
// @BasePath        /

//go:generate swag init --outputTypes go,json

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"todo-api/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
