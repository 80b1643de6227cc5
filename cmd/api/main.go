package main

import (
	"context"
	"log"

	"github.com/sngm3741/halal-food-club/api/internal/config"
	"github.com/sngm3741/halal-food-club/api/internal/server"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	app, err := server.New(ctx, cfg)
	if err != nil {
		cfg.ServerLog.Fatalf("backend initialisation failed: %v", err)
	}
	if err := app.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
