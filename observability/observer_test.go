package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/delivio/actionserver/observability"
)

// captureObserver records events for assertions. Safe for concurrent use so
// fan-out tests can emit from several goroutines.
type captureObserver struct {
	mu     sync.Mutex
	events []observability.Event
}

func (c *captureObserver) OnEvent(ctx context.Context, event observability.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureObserver) all() []observability.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]observability.Event(nil), c.events...)
}

func turnEvent(eventType observability.EventType, level observability.Level, data map[string]any) observability.Event {
	return observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "server.Turn",
		Data:      data,
	}
}

func TestLevel_SeverityRanges(t *testing.T) {
	tests := []struct {
		name      string
		level     observability.Level
		wantText  string
		wantSlog  slog.Level
		wantValue int
	}{
		{name: "verbose", level: observability.LevelVerbose, wantText: "DEBUG", wantSlog: slog.LevelDebug, wantValue: 5},
		{name: "info", level: observability.LevelInfo, wantText: "INFO", wantSlog: slog.LevelInfo, wantValue: 9},
		{name: "warning", level: observability.LevelWarning, wantText: "WARN", wantSlog: slog.LevelWarn, wantValue: 13},
		{name: "error", level: observability.LevelError, wantText: "ERROR", wantSlog: slog.LevelError, wantValue: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.wantText {
				t.Errorf("String() = %q, want %q", got, tt.wantText)
			}
			if got := tt.level.SlogLevel(); got != tt.wantSlog {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.wantSlog)
			}
			// Values sit in the OTel SeverityNumber ranges so events can
			// feed an OTel pipeline without translation.
			if int(tt.level) != tt.wantValue {
				t.Errorf("Level = %d, want %d", tt.level, tt.wantValue)
			}
		})
	}
}

func TestLevel_RangeEdges(t *testing.T) {
	if got := observability.Level(1).String(); got != "TRACE" {
		t.Errorf("Level(1).String() = %q, want TRACE", got)
	}
	if got := observability.Level(21).String(); got != "FATAL" {
		t.Errorf("Level(21).String() = %q, want FATAL", got)
	}
}

func TestSlogObserver_TurnEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	obs := observability.NewSlogObserver(logger)
	obs.OnEvent(context.Background(), turnEvent("turn.complete", observability.LevelInfo, map[string]any{
		"turn_id":  "t-1",
		"action":   "action_product_search",
		"events":   3,
		"messages": 1,
	}))

	output := buf.String()
	if !strings.Contains(output, "turn.complete") {
		t.Errorf("event type missing from log message: %s", output)
	}
	if !strings.Contains(output, "source=server.Turn") {
		t.Errorf("source attribute missing: %s", output)
	}
	for _, attr := range []string{"action=action_product_search", "events=3", "turn_id=t-1"} {
		if !strings.Contains(output, attr) {
			t.Errorf("data attribute %q missing: %s", attr, output)
		}
	}
}

func TestSlogObserver_HandlerLevelFilters(t *testing.T) {
	tests := []struct {
		name      string
		event     observability.Event
		minLevel  slog.Level
		expectLog bool
	}{
		{
			name:      "verbose call suppressed at info",
			event:     turnEvent("backend.call", observability.LevelVerbose, nil),
			minLevel:  slog.LevelInfo,
			expectLog: false,
		},
		{
			name:      "verbose call emitted at debug",
			event:     turnEvent("backend.call", observability.LevelVerbose, nil),
			minLevel:  slog.LevelDebug,
			expectLog: true,
		},
		{
			name:      "backend failure passes a warn handler",
			event:     turnEvent("backend.error", observability.LevelWarning, nil),
			minLevel:  slog.LevelWarn,
			expectLog: true,
		},
		{
			name:      "turn completion suppressed at warn",
			event:     turnEvent("turn.complete", observability.LevelInfo, nil),
			minLevel:  slog.LevelWarn,
			expectLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
				Level: tt.minLevel,
			}))

			observability.NewSlogObserver(logger).OnEvent(context.Background(), tt.event)

			if got := buf.Len() > 0; got != tt.expectLog {
				t.Errorf("logged = %v, want %v (buf: %q)", got, tt.expectLog, buf.String())
			}
		})
	}
}

func TestNoOpObserver(t *testing.T) {
	observability.NoOpObserver{}.OnEvent(context.Background(),
		turnEvent("turn.error", observability.LevelError, map[string]any{"error": "boom"}))
}

func TestMultiObserver_FanOut(t *testing.T) {
	first := &captureObserver{}
	second := &captureObserver{}
	multi := observability.NewMultiObserver(first, nil, second)

	multi.OnEvent(context.Background(), turnEvent("action.selection.miss", observability.LevelInfo, map[string]any{
		"candidates": 3,
	}))

	for i, obs := range []*captureObserver{first, second} {
		events := obs.all()
		if len(events) != 1 {
			t.Fatalf("observer %d received %d events, want 1", i, len(events))
		}
		if events[0].Type != "action.selection.miss" {
			t.Errorf("observer %d event type = %q, want action.selection.miss", i, events[0].Type)
		}
		if events[0].Data["candidates"] != 3 {
			t.Errorf("observer %d candidates = %v, want 3", i, events[0].Data["candidates"])
		}
	}
}

func TestMultiObserver_AllNil(t *testing.T) {
	multi := observability.NewMultiObserver(nil, nil)
	multi.OnEvent(context.Background(), turnEvent("turn.start", observability.LevelInfo, nil))
}

func TestGetObserver_Builtins(t *testing.T) {
	for _, name := range []string{"noop", "slog"} {
		obs, err := observability.GetObserver(name)
		if err != nil {
			t.Errorf("GetObserver(%q) failed: %v", name, err)
		}
		if obs == nil {
			t.Errorf("GetObserver(%q) returned nil observer", name)
		}
	}

	if _, err := observability.GetObserver("statsd"); err == nil {
		t.Error("GetObserver(statsd) succeeded, want unknown-observer error")
	}
}

func TestRegisterObserver(t *testing.T) {
	capture := &captureObserver{}
	observability.RegisterObserver("capture-turns", capture)

	obs, err := observability.GetObserver("capture-turns")
	if err != nil {
		t.Fatalf("GetObserver failed: %v", err)
	}

	obs.OnEvent(context.Background(), turnEvent("turn.start", observability.LevelInfo, map[string]any{
		"action": "action_view_cart",
	}))

	events := capture.all()
	if len(events) != 1 {
		t.Fatalf("received %d events, want 1", len(events))
	}
	if events[0].Data["action"] != "action_view_cart" {
		t.Errorf("action = %v, want action_view_cart", events[0].Data["action"])
	}
}
