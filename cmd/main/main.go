package main

import (
	"context"

	"devdocs/samplemap/internal/config"
	"devdocs/samplemap/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Crawl failed: %v", err)
	}
}
