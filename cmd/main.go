package main

import (
	"his-backend/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

// Thin entry point; all wiring lives in cmd/bootstrap so cmd/seed can reuse
// the same configuration and database setup.
func main() {
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to bootstrap his-backend: %v", err)
	}

	// Blocks until SIGINT/SIGTERM, then shuts down gracefully
	app.Run()
}
