// Command server runs the course progress API.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/kmorley/bizenglish/internal/app"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("server: %v", err)
	}
}
