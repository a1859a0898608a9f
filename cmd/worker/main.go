package main

import (
	"context"
	"log"

	"resourced/internal/app/bootstrap"
)

// Worker process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build dispatcher + consumer wiring.
// 3) Consume the resource topic until interrupted.
func main() {
	log.Println("resource-service worker starting")
	app, err := bootstrap.BuildWorker()
	if err != nil {
		log.Fatalf("bootstrap worker failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("worker shutdown close failed: %v", err)
		}
	}()

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("resource-service worker stopped with error: %v", err)
	}
}
