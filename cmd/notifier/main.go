package main // Entry point for the contact-message notifier worker

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/iliyamo/portfolio-api/internal/queue"
)

func main() {
	_ = godotenv.Load()

	log.Println("contact notifier starting")
	if err := queue.StartContactConsumer(); err != nil {
		log.Fatalf("notifier: %v", err)
	}
}
