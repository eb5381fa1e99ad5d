package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/canvasflow/canvasflow/pkg/cmd"
	"github.com/canvasflow/canvasflow/pkg/execution"
	"github.com/canvasflow/canvasflow/pkg/log"
	"github.com/canvasflow/canvasflow/pkg/registry"
)

const defaultPort = 9080

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "canvasflow-api",
		Usage:                 "Create and manage workflow-builder workspaces, systems, and workflows",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Storage URL: postgres://... or file://path for the local store",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:     "execution-url",
				Usage:    "Base URL of the execution backend",
				Required: true,
				Sources:  cli.EnvVars("EXECUTION_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing CanvasFlow API")

			reg := registry.NewRegistry(logger)
			reg.RegisterDefaultDefinitions()

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			client := execution.NewClient(command.String("execution-url"), logger)
			runner := execution.NewRunner(client, logger)

			api := NewAPI(logger, persistence, reg, runner)

			return api.Start(command.Int("port"))
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		logger.Error("API server failed", "error", err)
		os.Exit(1)
	}
}
