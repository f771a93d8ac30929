// Command server runs the phonebook backend: the JSON API, the device
// XML feeds, and the import/export endpoints.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/mverbeek/phonebook-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
