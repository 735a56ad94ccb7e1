package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"stackfast/internal/bootstrap"
	"stackfast/internal/shared/config"
	"stackfast/internal/shared/server"
)

func main() {
	cfg := config.Load()
	if cfg.Env == "production" || cfg.Env == "staging" {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
