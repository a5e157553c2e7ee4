package main

import (
	"fmt"
	"log"
	"os"

	"github.com/duarte/imovest/internal/config"
	"github.com/duarte/imovest/internal/web"
)

func main() {
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv, err := web.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}
	defer srv.Close()

	log.Printf("Server starting on port %d (analyzer at %s)...", cfg.Server.Port, cfg.Analyzer.BaseURL)
	if err := srv.Start(fmt.Sprintf("%d", cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}
