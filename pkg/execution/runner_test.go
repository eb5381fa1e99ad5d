package execution

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvasflow/canvasflow/pkg/graph"
	"github.com/canvasflow/canvasflow/pkg/models"
)

func runnerModel() *graph.Model {
	workflow := &models.Workflow{
		ID:   "wf-1",
		Name: "Test Workflow",
		Nodes: []*models.WorkflowNode{
			{ID: "n-1", Type: models.NodeTypeSchedule, Name: "Trigger", Connections: &models.NodeConnections{Output: []string{"n-2"}}},
			{ID: "n-2", Type: models.NodeTypeHyperclova, Name: "AI Summary"},
		},
	}

	return graph.NewModel(workflow)
}

func backendFor(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, slog.Default())
}

func TestRunner_Run(t *testing.T) {
	var started bool

	client := backendFor(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/executions":
			_ = json.NewEncoder(w).Encode(models.Execution{ID: "exec-1", Status: models.ExecutionStatusRunning})
		case strings.HasPrefix(r.URL.Path, "/executions/"):
			started = true

			_ = json.NewEncoder(w).Encode(startResponse{Message: "started"})
		}
	})

	runner := NewRunner(client, slog.Default())
	runner.pollDelay = time.Millisecond

	model := runnerModel()

	execution, err := runner.Run(context.Background(), model, "sys-1")
	require.NoError(t, err)
	assert.Equal(t, "exec-1", execution.ID)
	assert.True(t, started)

	// Graph state committed before the remote calls.
	workflow := model.Workflow()
	require.Len(t, workflow.Connections, 1)
	assert.Equal(t, "n-1", workflow.Connections[0].From)

	require.Len(t, workflow.Logs, 2)
	assert.Equal(t, "Execution started: exec-1", workflow.Logs[0].Message)
	assert.Equal(t, "success", workflow.Logs[0].Status)
	assert.Equal(t, "Execution requested", workflow.Logs[1].Message)
}

func TestRunner_RejectsConcurrentRun(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once

	client := backendFor(t, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(entered) })
		<-release

		_ = json.NewEncoder(w).Encode(models.Execution{ID: "exec-1"})
	})

	runner := NewRunner(client, slog.Default())
	runner.pollDelay = time.Millisecond

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		_, _ = runner.Run(context.Background(), runnerModel(), "sys-1")
	}()

	<-entered
	assert.True(t, runner.Running())

	_, err := runner.Run(context.Background(), runnerModel(), "sys-1")
	assert.ErrorIs(t, err, ErrRunInProgress)

	close(release)
	wg.Wait()
	assert.False(t, runner.Running())
}

func TestRunner_CreateFailureLogged(t *testing.T) {
	client := backendFor(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	})

	runner := NewRunner(client, slog.Default())
	model := runnerModel()

	_, err := runner.Run(context.Background(), model, "sys-1")
	require.Error(t, err)

	logs := model.Workflow().Logs
	require.Len(t, logs, 2)
	assert.Equal(t, "error", logs[0].Status)
	assert.Contains(t, logs[0].Message, "Failed to create execution")

	// The guard releases after a failed run.
	assert.False(t, runner.Running())
}

func TestRunner_StartFailureLogged(t *testing.T) {
	client := backendFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/executions" {
			_ = json.NewEncoder(w).Encode(models.Execution{ID: "exec-1"})

			return
		}

		http.Error(w, "queue full", http.StatusServiceUnavailable)
	})

	runner := NewRunner(client, slog.Default())
	model := runnerModel()

	_, err := runner.Run(context.Background(), model, "sys-1")
	require.Error(t, err)

	logs := model.Workflow().Logs
	assert.Equal(t, "error", logs[0].Status)
	assert.Contains(t, logs[0].Message, "Failed to start execution")
}

func TestRunner_PollFailureDoesNotAffectRun(t *testing.T) {
	var mu sync.Mutex
	polled := false

	client := backendFor(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			mu.Lock()
			polled = true
			mu.Unlock()

			http.Error(w, "gone", http.StatusNotFound)

			return
		}

		if r.URL.Path == "/executions" {
			_ = json.NewEncoder(w).Encode(models.Execution{ID: "exec-1"})

			return
		}

		_ = json.NewEncoder(w).Encode(startResponse{Message: "started"})
	})

	runner := NewRunner(client, slog.Default())
	runner.pollDelay = time.Millisecond

	model := runnerModel()

	ctx, cancel := context.WithCancel(context.Background())
	execution, err := runner.Run(ctx, model, "sys-1")
	require.NoError(t, err)
	require.Equal(t, "exec-1", execution.ID)

	// Cancel after the run; the detached poll must still fire.
	cancel()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return polled
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, "success", model.Workflow().Logs[0].Status)
}
