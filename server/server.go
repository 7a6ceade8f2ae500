// Package server exposes the action handlers over the webhook protocol. It
// merges persisted slots with the tracker's runtime slots, dispatches to the
// named action, persists the resulting slot events, and answers with the
// events plus the queued messages.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/delivio/actionserver/actions"
	"github.com/delivio/actionserver/core/protocol"
	"github.com/delivio/actionserver/observability"
	"github.com/delivio/actionserver/session"
)

// Turn event types.
const (
	EventTurnStart    observability.EventType = "turn.start"
	EventTurnComplete observability.EventType = "turn.complete"
	EventTurnError    observability.EventType = "turn.error"
)

const turnSource = "server.Turn"

// Server serves the webhook endpoint.
type Server struct {
	registry    *actions.Registry
	store       session.Store
	observer    observability.Observer
	turnTimeout time.Duration
	engine      *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithObserver sets the observer for turn events.
func WithObserver(observer observability.Observer) Option {
	return func(s *Server) { s.observer = observer }
}

// WithTurnTimeout bounds each webhook turn end to end.
func WithTurnTimeout(timeout time.Duration) Option {
	return func(s *Server) { s.turnTimeout = timeout }
}

// New creates a Server dispatching to the given registry and persisting
// slots in the given store.
func New(registry *actions.Registry, store session.Store, allowedOrigins []string, opts ...Option) *Server {
	s := &Server{
		registry:    registry,
		store:       store,
		observer:    observability.NoOpObserver{},
		turnTimeout: time.Duration(defaultTurnTimeout) * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		corsConfig.AllowOrigins = allowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost}
	engine.Use(cors.New(corsConfig))

	engine.GET("/healthz", s.handleHealth)
	engine.POST("/webhook", s.handleWebhook)

	s.engine = engine
	return s
}

// Handler returns the HTTP handler, for mounting and for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe runs the HTTP server until ctx is canceled, then shuts it
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"actions": len(s.registry.List()),
	})
}

func (s *Server) emit(ctx context.Context, eventType observability.EventType, level observability.Level, data map[string]any) {
	s.observer.OnEvent(ctx, observability.Event{
		Type:      eventType,
		Level:     level,
		Timestamp: time.Now(),
		Source:    turnSource,
		Data:      data,
	})
}

func (s *Server) handleWebhook(c *gin.Context) {
	var req protocol.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.NextAction == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "next_action is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.turnTimeout)
	defer cancel()

	turnID := uuid.NewString()
	s.emit(ctx, EventTurnStart, observability.LevelInfo, map[string]any{
		"turn_id":   turnID,
		"action":    req.NextAction,
		"sender_id": req.SenderID,
	})

	action, err := s.registry.Get(req.NextAction)
	if err != nil {
		s.emit(ctx, EventTurnError, observability.LevelWarning, map[string]any{
			"turn_id": turnID,
			"action":  req.NextAction,
			"error":   err.Error(),
		})
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action: " + req.NextAction})
		return
	}

	trk, err := s.buildTracker(ctx, &req)
	if err != nil {
		s.turnFailed(c, ctx, turnID, req.NextAction, err)
		return
	}

	dispatcher := &actions.Dispatcher{}
	events, err := action.Run(ctx, trk, dispatcher)
	if err != nil {
		s.turnFailed(c, ctx, turnID, req.NextAction, err)
		return
	}

	if err := s.persist(ctx, trk.ConversationID, events); err != nil {
		s.turnFailed(c, ctx, turnID, req.NextAction, err)
		return
	}

	s.emit(ctx, EventTurnComplete, observability.LevelInfo, map[string]any{
		"turn_id":  turnID,
		"action":   req.NextAction,
		"events":   len(events),
		"messages": len(dispatcher.Messages()),
	})

	c.JSON(http.StatusOK, protocol.WebhookResponse{
		Events:    normalizeEvents(events),
		Responses: normalizeMessages(dispatcher.Messages()),
	})
}

func (s *Server) turnFailed(c *gin.Context, ctx context.Context, turnID, action string, err error) {
	s.emit(ctx, EventTurnError, observability.LevelError, map[string]any{
		"turn_id": turnID,
		"action":  action,
		"error":   err.Error(),
	})
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "turn timed out"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// buildTracker merges the persisted slots with the tracker's runtime slots.
// Runtime slots win on conflicts, since the dialogue runtime may have
// updated them after the last persisted turn.
func (s *Server) buildTracker(ctx context.Context, req *protocol.WebhookRequest) (*actions.Tracker, error) {
	conversationID := req.SenderID
	if conversationID == "" {
		conversationID = req.Tracker.SenderID
	}

	slots := session.Slots{}
	if conversationID != "" {
		stored, err := s.store.Slots(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		slots = stored
	}
	slots.Merge(session.Slots(req.Tracker.Slots))

	return actions.NewTracker(req, slots), nil
}

// persist writes the turn's slot events into the session store. Clear
// events delete, set events overwrite.
func (s *Server) persist(ctx context.Context, conversationID string, events []protocol.SlotEvent) error {
	if conversationID == "" || len(events) == 0 {
		return nil
	}

	updates := session.Slots{}
	var cleared []string
	for _, event := range events {
		if event.IsClear() {
			cleared = append(cleared, event.Name)
			delete(updates, event.Name)
			continue
		}
		updates[event.Name] = event.Value
	}

	if len(cleared) > 0 {
		if err := s.store.Delete(ctx, conversationID, cleared...); err != nil {
			return err
		}
	}
	if len(updates) > 0 {
		return s.store.Set(ctx, conversationID, updates)
	}
	return nil
}

func normalizeEvents(events []protocol.SlotEvent) []protocol.SlotEvent {
	if events == nil {
		return []protocol.SlotEvent{}
	}
	return events
}

func normalizeMessages(messages []protocol.BotMessage) []protocol.BotMessage {
	if messages == nil {
		return []protocol.BotMessage{}
	}
	return messages
}
