// Package cmd wires shared dependencies for the command-line entrypoints.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/canvasflow/canvasflow/pkg/persistence"
	"github.com/canvasflow/canvasflow/pkg/persistence/file"
	"github.com/canvasflow/canvasflow/pkg/persistence/postgresql"
)

// NewPersistence selects the persistence implementation from the database
// URL scheme: postgres:// connects to PostgreSQL, anything else falls back
// to the local file store.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parseProvider(databaseURL) {
	case "postgres", "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to initialize PostgreSQL persistence", "error", err)
			os.Exit(1)
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}

func parseProvider(databaseURL string) string {
	provider, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	return provider
}
