package devtools

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/reactive-go/reactive/reactive"
)

func TestServerBroadcastsDebugEventsToConnectedClient(t *testing.T) {
	prevDevMode := reactive.DevMode
	reactive.DevMode = true
	defer func() { reactive.DevMode = prevDevMode }()

	srv := NewServer(nil)
	defer srv.Close()

	r := chi.NewRouter()
	srv.Mount(r)
	ts := httptest.NewServer(r)
	defer ts.Close()

	wsURL := "ws" + ts.URL[len("http"):] + "/devtools/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	o := reactive.NewObject(map[string]any{"n": 1})
	reactive.CreateEffect(func() reactive.Cleanup {
		o.Get("n")
		return nil
	})
	o.Set("n", 2)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected a broadcast frame, got error: %v", err)
	}
	if len(msg) == 0 {
		t.Fatal("expected a non-empty debug event frame")
	}
}

func TestNewServerDefaultsToSlogDefault(t *testing.T) {
	srv := NewServer(nil)
	defer srv.Close()
	if srv.logger == nil {
		t.Fatal("expected a default logger to be assigned")
	}
}
