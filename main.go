package main

import (
	"context"
	"os/signal"
	"syscall"

	"recipe-server/confs"
	"recipe-server/db"
	"recipe-server/entities"
	"recipe-server/logger"
	"recipe-server/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		logger.New(0).Fatal("error loading config", "error", err)
	}

	log := logger.New(cfg.LogLevel)
	entities.PasswordCost = cfg.PasswordCost
	if cfg.UsesDevSecret() {
		log.Warn("SESSION_SECRET not set, using development secret")
	}

	// connect to database
	database, err := db.Connect(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err, "driver", cfg.Database.Driver)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run server
	if err := server.NewServer(database, cfg, log).Start(ctx); err != nil {
		log.Error("server stopped", "error", err)
	}
}
