package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type testMessage struct {
	Name string
}

func (testMessage) Type() string { return "blog.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "blog.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]any
}

type captureLogger struct {
	mu      *sync.Mutex
	entries *[]logEntry
	fields  map[string]any
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{mu: &sync.Mutex{}, entries: &[]logEntry{}, fields: map[string]any{}}
}

func (c *captureLogger) record(level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.entries = append(*c.entries, logEntry{level: level, msg: msg, fields: c.fields})
}

func (c *captureLogger) Trace(msg string, _ ...any) { c.record("trace", msg) }
func (c *captureLogger) Debug(msg string, _ ...any) { c.record("debug", msg) }
func (c *captureLogger) Info(msg string, _ ...any)  { c.record("info", msg) }
func (c *captureLogger) Warn(msg string, _ ...any)  { c.record("warn", msg) }
func (c *captureLogger) Error(msg string, _ ...any) { c.record("error", msg) }
func (c *captureLogger) Fatal(msg string, _ ...any) { c.record("fatal", msg) }

func (c *captureLogger) WithContext(context.Context) interfaces.Logger { return c }

func (c *captureLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(c.fields)+len(fields))
	for k, v := range c.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &captureLogger{mu: c.mu, entries: c.entries, fields: merged}
}

func (c *captureLogger) find(msg string) (logEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range *c.entries {
		if entry.msg == msg {
			return entry, true
		}
	}
	return logEntry{}, false
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if !IsValidationError(err) {
		t.Fatal("expected IsValidationError to match")
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected context cancellation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected wrapped execution error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if IsValidationError(err) {
		t.Fatal("did not expect validation category")
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
}

func TestHandlerLogsMessageFields(t *testing.T) {
	logger := newCaptureLogger()
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error { return nil },
		WithLogger[testMessage](logger),
		WithOperation[testMessage]("test.run"),
		WithMessageFields(func(msg testMessage) map[string]any {
			return map[string]any{"name": msg.Name}
		}),
	)

	if err := h.Execute(context.Background(), testMessage{Name: "badges"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	entry, ok := logger.find("command.execute.success")
	if !ok {
		t.Fatal("expected success entry")
	}
	if entry.fields["command"] != "blog.test.message" || entry.fields["operation"] != "test.run" || entry.fields["name"] != "badges" {
		t.Fatalf("unexpected fields %#v", entry.fields)
	}
}

func TestHandlerInvokesTelemetry(t *testing.T) {
	var got TelemetryInfo
	calls := 0
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, WithTelemetry(func(_ context.Context, _ testMessage, info TelemetryInfo) {
		calls++
		got = info
	}))

	if err := h.Execute(context.Background(), testMessage{}); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected one telemetry call, got %d", calls)
	}
	if got.Status != TelemetryStatusFailed || got.Command != "blog.test.message" || got.Error == nil {
		t.Fatalf("unexpected telemetry %+v", got)
	}
}

func TestDefaultTelemetryUsesSuppliedLogger(t *testing.T) {
	logger := newCaptureLogger()
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error { return nil },
		WithTelemetry(DefaultTelemetry[testMessage](logger)),
	)

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	entry, ok := logger.find("command.execute.success")
	if !ok || entry.fields["command"] != "blog.test.message" {
		t.Fatalf("expected success entry with command field, got %+v (ok=%v)", entry, ok)
	}
}

func TestCommandLoggerNamespaces(t *testing.T) {
	provider := &namedProvider{}
	CommandLogger(provider, "gallery")
	CommandLogger(provider, " ")
	if len(provider.names) != 2 || provider.names[0] != "blog.commands.gallery" || provider.names[1] != "blog.commands.core" {
		t.Fatalf("unexpected logger names %v", provider.names)
	}
}

type namedProvider struct {
	names []string
}

func (p *namedProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return newCaptureLogger()
}
