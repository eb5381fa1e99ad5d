package execution

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/canvasflow/canvasflow/pkg/graph"
	"github.com/canvasflow/canvasflow/pkg/models"
	"github.com/canvasflow/canvasflow/pkg/payload"
)

// ErrRunInProgress rejects a second Run while one is outstanding. Callers
// surface it as a warning notification, never a crash.
var ErrRunInProgress = errors.New("an execution is already in progress")

// Runner drives one execution session for a workflow. A boolean flag gates
// re-entry; graph state is committed before any remote call so a failed call
// never leaves the model partially mutated.
type Runner struct {
	client    *Client
	logger    *slog.Logger
	pollDelay time.Duration
	running   atomic.Bool
}

func NewRunner(client *Client, logger *slog.Logger) *Runner {
	return &Runner{
		client:    client,
		logger:    logger,
		pollDelay: 5 * time.Second,
	}
}

// Running reports whether an execution session is outstanding.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run serializes the workflow, creates and starts a remote execution, and
// schedules a fire-and-forget status poll. Failures are appended to the
// workflow's run log with status "error" and returned; the poll's own
// failures are swallowed and do not affect the already-reported start.
func (r *Runner) Run(ctx context.Context, model *graph.Model, systemID string) (*models.Execution, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	// Commit graph state before any remote call.
	model.SyncConnections()
	model.AddLog("info", "Execution requested")

	workflow := model.Workflow()
	built := payload.Build(workflow)

	execution, err := r.client.Create(ctx, systemID, built)
	if err != nil {
		model.AddLog("error", "Failed to create execution: "+err.Error())

		return nil, err
	}

	if _, err := r.client.Start(ctx, execution.ID); err != nil {
		model.AddLog("error", "Failed to start execution: "+err.Error())

		return nil, err
	}

	model.AddLog("success", "Execution started: "+execution.ID)

	r.schedulePoll(ctx, execution.ID)

	return execution, nil
}

// schedulePoll fetches execution state once after a fixed delay. Poll
// failures are logged and swallowed; the run's reported success state is
// unaffected.
func (r *Runner) schedulePoll(ctx context.Context, executionID string) {
	pollCtx := context.WithoutCancel(ctx)

	go func() {
		time.Sleep(r.pollDelay)

		execution, err := r.client.Get(pollCtx, executionID)
		if err != nil {
			r.logger.Warn("execution status poll failed", "execution_id", executionID, "error", err)

			return
		}

		r.logger.Info("execution status", "execution_id", executionID, "status", execution.Status)
	}()
}
