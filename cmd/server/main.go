package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophershop/internal/buildinfo"
	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/dmitrijs2005/gophershop/internal/server"
	"github.com/dmitrijs2005/gophershop/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.NewJSONLogger(os.Stdout, level)

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
