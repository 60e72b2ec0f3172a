package main

import (
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/dharmasatrya/aviasearch/internal/app"
	"github.com/dharmasatrya/aviasearch/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("AVIASEARCH_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := app.Run(cfg); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
