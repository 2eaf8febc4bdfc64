package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/go-petclinic-server/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-petclinic-server/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot migrate schema")
	}

	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to migrate clinic schema: %v", err)
	}
	log.Printf("clinic schema migration completed")
}
