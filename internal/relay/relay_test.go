package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mo-shab/tutor/internal/domain"
)

// dialPair spins up a websocket endpoint and returns the server-side wrapped
// connection plus the client for reading pushed events.
func dialPair(t *testing.T) (*Conn, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	serverConn := make(chan *Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		serverConn <- NewConn(ws)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	select {
	case c := <-serverConn:
		return c, client
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server connection")
		return nil, nil
	}
}

func readEvent(t *testing.T, client *websocket.Conn) Event {
	t.Helper()
	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	var ev Event
	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read event: %v", err)
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	return ev
}

func TestRelayDeliversToConnectedUser(t *testing.T) {
	reg := NewRegistry()
	r := New(reg, nil)
	conn, client := dialPair(t)
	reg.Register("u1", conn)

	msg := &domain.Message{ID: "m1", ConversationID: "c1", SenderID: "u2", Content: "hey"}
	r.NewMessage("u1", msg)

	ev := readEvent(t, client)
	if ev.Event != EventNewMessage {
		t.Fatalf("expected %s, got %s", EventNewMessage, ev.Event)
	}

	r.ConversationUpdated("u1", &domain.ConversationSummary{UnreadCount: 3})
	ev = readEvent(t, client)
	if ev.Event != EventConversationUpdated {
		t.Fatalf("expected %s, got %s", EventConversationUpdated, ev.Event)
	}

	r.ForceLogout("u1")
	ev = readEvent(t, client)
	if ev.Event != EventForceLogout {
		t.Fatalf("expected %s, got %s", EventForceLogout, ev.Event)
	}
}

func TestRelayNoConnectionIsNoOp(t *testing.T) {
	reg := NewRegistry()
	r := New(reg, nil)

	// Nobody is connected: pushes must be silently dropped, not fail.
	r.NewMessage("ghost", &domain.Message{ID: "m1"})
	r.ConversationUpdated("ghost", &domain.ConversationSummary{})
	r.ForceLogout("ghost")

	if reg.Count() != 0 {
		t.Fatalf("registry should stay empty, got %d", reg.Count())
	}
}

func TestRelayDropsDeadConnection(t *testing.T) {
	reg := NewRegistry()
	r := New(reg, nil)
	conn, client := dialPair(t)
	reg.Register("u1", conn)

	_ = client.Close()
	_ = conn.Close()

	// The first failed write tears the entry down.
	r.NewMessage("u1", &domain.Message{ID: "m1"})
	if _, ok := reg.Lookup("u1"); ok {
		t.Fatal("dead connection should be unregistered after a failed push")
	}
}
