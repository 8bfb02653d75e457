// Package server implements the dodesk HTTP/JSON API.
package server

import (
	"context"
	"log/slog"

	"github.com/shilendra-dev/dodesk/internal/events"
	"github.com/shilendra-dev/dodesk/internal/store"
)

// userIDHeader carries the acting user's identity. Authentication happens
// upstream; the server treats the value as opaque.
const userIDHeader = "X-User-Id"

// DeskServer serves the dodesk REST API backed by the given store.
type DeskServer struct {
	store     store.Store
	publisher events.Publisher
	sseHub    *sseHub
	logger    *slog.Logger
}

// NewDeskServer returns a new DeskServer backed by the given store and publisher.
func NewDeskServer(s store.Store, p events.Publisher, logger *slog.Logger) *DeskServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeskServer{
		store:     s,
		publisher: p,
		sseHub:    newSSEHub(),
		logger:    logger,
	}
}

// publish sends an event to NATS and fans it out to SSE clients. Both are
// best-effort; failures are logged but do not block the caller.
func (s *DeskServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		s.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// inputError indicates invalid user input. The transport layer maps it to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
