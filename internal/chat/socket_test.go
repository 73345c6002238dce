package chat_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/odlemon/khaya-portal-sub000/internal/chat"
	"github.com/odlemon/khaya-portal-sub000/internal/domain"
)

type wireFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// fakeServer upgrades connections, records the handshake token, echoes a
// new_message frame after receiving a join.
func fakeServer(t *testing.T) (*httptest.Server, chan string) {
	t.Helper()
	tokens := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens <- r.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		var f wireFrame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		if f.Event != "join_chat" {
			t.Errorf("first frame event = %q", f.Event)
			return
		}

		msg, _ := json.Marshal(domain.ChatMessage{ID: "m-1", ChatID: "c-1", Content: "hello"})
		_ = conn.WriteJSON(wireFrame{Event: "new_message", Data: msg})

		// Hold the connection open until the client closes it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv, tokens
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSocketDeliversMessages(t *testing.T) {
	srv, tokens := fakeServer(t)
	sock := chat.NewSocket(wsURL(srv), zap.NewNop())

	received := make(chan domain.ChatMessage, 1)
	sock.OnMessage(func(msg domain.ChatMessage) {
		received <- msg
	})

	if err := sock.Open("tok-123"); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sock.Close()

	select {
	case tok := <-tokens:
		if tok != "tok-123" {
			t.Errorf("handshake token = %q", tok)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw the dial")
	}

	if err := sock.JoinChat("c-1"); err != nil {
		t.Fatalf("join: %v", err)
	}

	select {
	case msg := <-received:
		if msg.ID != "m-1" || msg.Content != "hello" {
			t.Errorf("message = %+v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("pushed message never arrived")
	}
}

func TestEmitWithoutConnection(t *testing.T) {
	sock := chat.NewSocket("ws://unused", zap.NewNop())
	if err := sock.JoinChat("c-1"); err == nil {
		t.Fatal("expected error when not connected")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	srv, _ := fakeServer(t)
	sock := chat.NewSocket(wsURL(srv), zap.NewNop())
	if err := sock.Open("tok"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := sock.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sock.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}
