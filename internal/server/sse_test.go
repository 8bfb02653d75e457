package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shilendra-dev/dodesk/internal/events"
	"github.com/shilendra-dev/dodesk/internal/model"
)

func TestSSEHub_BroadcastAndReceive(t *testing.T) {
	hub := newSSEHub()

	client := hub.subscribe(nil, "") // all topics, all workspaces
	defer hub.unsubscribe(client)

	hub.broadcast("dodesk.issue.created", "ws-1", []byte(`{"id":"iss-1"}`))

	select {
	case evt := <-client.ch:
		if evt.Topic != "dodesk.issue.created" {
			t.Fatalf("expected topic=%q, got %q", "dodesk.issue.created", evt.Topic)
		}
		if string(evt.Data) != `{"id":"iss-1"}` {
			t.Fatalf("expected data=%q, got %q", `{"id":"iss-1"}`, string(evt.Data))
		}
		if evt.ID != 1 {
			t.Fatalf("expected id=1, got %d", evt.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSSEHub_TopicFiltering(t *testing.T) {
	hub := newSSEHub()

	// Client only wants filter events.
	client := hub.subscribe([]string{"dodesk.filter.*"}, "")
	defer hub.unsubscribe(client)

	hub.broadcast("dodesk.issue.created", "ws-1", []byte(`{"id":"iss-1"}`))
	hub.broadcast("dodesk.filter.created", "ws-1", []byte(`{"id":"flt-1"}`))

	select {
	case evt := <-client.ch:
		if evt.Topic != "dodesk.filter.created" {
			t.Fatalf("expected topic=%q, got %q", "dodesk.filter.created", evt.Topic)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	// Ensure no more events (issue.created should have been filtered).
	select {
	case evt := <-client.ch:
		t.Fatalf("unexpected event: topic=%q", evt.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSSEHub_WorkspaceFiltering(t *testing.T) {
	hub := newSSEHub()

	client := hub.subscribe(nil, "ws-1")
	defer hub.unsubscribe(client)

	hub.broadcast("dodesk.issue.created", "ws-2", []byte(`{"id":"iss-other"}`))
	hub.broadcast("dodesk.issue.created", "ws-1", []byte(`{"id":"iss-mine"}`))
	// Unknown workspace still reaches scoped clients.
	hub.broadcast("dodesk.issue.created", "", []byte(`{"id":"iss-unscoped"}`))

	select {
	case evt := <-client.ch:
		if string(evt.Data) != `{"id":"iss-mine"}` {
			t.Fatalf("expected ws-1 event first, got %s", evt.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case evt := <-client.ch:
		if string(evt.Data) != `{"id":"iss-unscoped"}` {
			t.Fatalf("expected unscoped event, got %s", evt.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for unscoped event")
	}

	select {
	case evt := <-client.ch:
		t.Fatalf("unexpected event from another workspace: %s", evt.Data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEventWorkspace(t *testing.T) {
	iss := &model.Issue{ID: "iss-1", WorkspaceID: "ws-9"}
	flt := &model.SavedFilter{ID: "flt-1", WorkspaceID: "ws-9"}

	for _, tc := range []struct {
		name  string
		event any
		want  string
	}{
		{"issue created", events.IssueCreated{Issue: iss}, "ws-9"},
		{"issue updated", events.IssueUpdated{Issue: iss}, "ws-9"},
		{"issue deleted", events.IssueDeleted{IssueID: "iss-1", WorkspaceID: "ws-9"}, "ws-9"},
		{"filter created", events.FilterCreated{Filter: flt}, "ws-9"},
		{"filter deleted", events.FilterDeleted{FilterID: "flt-1", WorkspaceID: "ws-9"}, "ws-9"},
		{"filter default set", events.FilterDefaultSet{Filter: flt}, "ws-9"},
		{"nil issue", events.IssueCreated{}, ""},
		{"unknown type", struct{}{}, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := eventWorkspace(tc.event); got != tc.want {
				t.Errorf("eventWorkspace = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSSEHub_Unsubscribe(t *testing.T) {
	hub := newSSEHub()

	client := hub.subscribe(nil, "")
	hub.unsubscribe(client)

	hub.broadcast("dodesk.issue.created", "ws-1", []byte(`{}`))

	select {
	case <-client.ch:
		t.Fatal("should not receive events after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSSEHub_EventsSince(t *testing.T) {
	hub := newSSEHub()

	for range 5 {
		hub.broadcast("dodesk.issue.created", "ws-1", []byte(`{}`))
	}

	// Get events after ID 2 (should return IDs 3, 4, 5).
	evts := hub.eventsSince(2)
	if len(evts) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evts))
	}
	if evts[0].ID != 3 || evts[1].ID != 4 || evts[2].ID != 5 {
		t.Fatalf("expected IDs [3,4,5], got [%d,%d,%d]", evts[0].ID, evts[1].ID, evts[2].ID)
	}
}

func TestSSEHub_RingBufferWrap(t *testing.T) {
	hub := newSSEHub()

	// Fill the ring buffer and then some to force wrap.
	for range sseRingBufferSize + 100 {
		hub.broadcast("dodesk.issue.created", "ws-1", []byte(`{}`))
	}

	// The oldest event in the buffer should have ID = 101 (100 were evicted).
	evts := hub.eventsSince(0)
	if len(evts) != sseRingBufferSize {
		t.Fatalf("expected %d events, got %d", sseRingBufferSize, len(evts))
	}
	if evts[0].ID != 101 {
		t.Fatalf("expected oldest event ID=101, got %d", evts[0].ID)
	}
}

func TestMatchTopicPattern(t *testing.T) {
	for _, tc := range []struct {
		pattern string
		topic   string
		want    bool
	}{
		{"dodesk.issue.created", "dodesk.issue.created", true},
		{"dodesk.issue.created", "dodesk.issue.updated", false},
		{"dodesk.issue.*", "dodesk.issue.created", true},
		{"dodesk.issue.*", "dodesk.filter.created", false},
		{"dodesk.>", "dodesk.issue.created", true},
		{"dodesk.>", "dodesk.filter.default_set", true},
		{"dodesk.>", "other.topic", false},
		{"*.*.*", "dodesk.issue.created", true},
		{"*.*.*", "dodesk.issue", false},
	} {
		t.Run(tc.pattern+"_"+tc.topic, func(t *testing.T) {
			got := matchTopicPattern(tc.pattern, tc.topic)
			if got != tc.want {
				t.Fatalf("matchTopicPattern(%q, %q) = %v, want %v", tc.pattern, tc.topic, got, tc.want)
			}
		})
	}
}

// TestHandleEventStream_SSE exercises the full HTTP SSE endpoint.
func TestHandleEventStream_SSE(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.NewHTTPHandler("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/v1/events/stream", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(rec, req)
	}()

	// Give the handler time to register the subscription.
	time.Sleep(50 * time.Millisecond)

	srv.sseHub.broadcast("dodesk.issue.created", "ws-1", []byte(`{"id":"iss-sse1"}`))

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("expected Content-Type=text/event-stream, got %q", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event:dodesk.issue.created") {
		t.Fatalf("expected event:dodesk.issue.created in body, got:\n%s", body)
	}
	if !strings.Contains(body, `data:{"id":"iss-sse1"}`) {
		t.Fatalf("expected data with iss-sse1 in body, got:\n%s", body)
	}
}

// TestHandleEventStream_LastEventID tests reconnection with Last-Event-ID.
func TestHandleEventStream_LastEventID(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.NewHTTPHandler("")

	// Pre-broadcast 3 events before connecting.
	srv.sseHub.broadcast("dodesk.issue.created", "ws-1", []byte(`{"n":1}`))
	srv.sseHub.broadcast("dodesk.issue.updated", "ws-1", []byte(`{"n":2}`))
	srv.sseHub.broadcast("dodesk.issue.deleted", "ws-1", []byte(`{"n":3}`))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/v1/events/stream", nil)
	req.Header.Set("Last-Event-ID", "1") // Should replay events 2 and 3.
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(rec, req)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if strings.Contains(body, `data:{"n":1}`) {
		t.Fatalf("expected event 1 to be skipped, got:\n%s", body)
	}
	if !strings.Contains(body, `data:{"n":2}`) {
		t.Fatalf("expected event 2 in body, got:\n%s", body)
	}
	if !strings.Contains(body, `data:{"n":3}`) {
		t.Fatalf("expected event 3 in body, got:\n%s", body)
	}
}

// TestHandleEventStream_Publish tests that the publish helper used by the
// HTTP handlers also reaches SSE clients.
func TestHandleEventStream_Publish(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.NewHTTPHandler("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/v1/events/stream", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(rec, req)
	}()

	time.Sleep(50 * time.Millisecond)

	srv.publish(context.Background(), events.TopicFilterCreated, events.FilterCreated{
		Filter: &model.SavedFilter{ID: "flt-sse", WorkspaceID: "ws-1", Name: "Streamed"},
	})

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if !strings.Contains(body, "event:dodesk.filter.created") {
		t.Fatalf("expected SSE event from publish, got:\n%s", body)
	}
	if !strings.Contains(body, "flt-sse") {
		t.Fatalf("expected payload with flt-sse, got:\n%s", body)
	}
}

// TestHandleEventStream_WorkspaceParam scopes the stream to one workspace.
func TestHandleEventStream_WorkspaceParam(t *testing.T) {
	srv, _, _ := newTestServer()
	handler := srv.NewHTTPHandler("")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/v1/events/stream?workspace=ws-1", nil)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.ServeHTTP(rec, req)
	}()

	time.Sleep(50 * time.Millisecond)

	srv.publish(context.Background(), events.TopicIssueCreated, events.IssueCreated{
		Issue: &model.Issue{ID: "iss-other", WorkspaceID: "ws-2", Title: "Elsewhere"},
	})
	srv.publish(context.Background(), events.TopicIssueCreated, events.IssueCreated{
		Issue: &model.Issue{ID: "iss-mine", WorkspaceID: "ws-1", Title: "Here"},
	})

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	body := rec.Body.String()
	if strings.Contains(body, "iss-other") {
		t.Fatalf("expected ws-2 event to be filtered out, got:\n%s", body)
	}
	if !strings.Contains(body, "iss-mine") {
		t.Fatalf("expected ws-1 event in body, got:\n%s", body)
	}
}
