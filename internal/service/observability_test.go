package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogUseCaseObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:     "sprint.regenerate",
		Duration: 12 * time.Millisecond,
		Success:  true,
		Fields:   map[string]any{"application_id": "app-1"},
	})

	line := buf.String()
	assert.Contains(t, line, "use_case=sprint.regenerate")
	assert.Contains(t, line, "application_id=app-1")
	assert.Contains(t, line, "success=true")
}

func TestLogUseCaseObserver_FailureLogsError(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "task.set_done",
		Success: false,
		Err:     errors.New("disk full"),
	})

	line := buf.String()
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, "disk full")
}

func TestNewLogUseCaseObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogUseCaseObserver(nil)
	assert.IsType(t, NoopUseCaseObserver{}, obs)
}
