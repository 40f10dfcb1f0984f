// Command server runs the cabinet backend HTTP server.
package main

import (
	"context"
	"log"

	"github.com/medikeep/cabinet-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
