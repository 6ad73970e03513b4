package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"

	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

const waitTimeout = 2 * time.Second

// answeringServer replies NotHandled to every query, after sending one
// garbage frame.
func answeringServer(t *testing.T) *httptest.Server {
	t.Helper()
	upgrader := gorilla.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			msg, err := wire.DecodeOutbound(data)
			if err != nil {
				t.Errorf("decode outbound: %v", err)
				return
			}
			if _, ok := msg.(wire.Query); !ok {
				continue
			}
			if err := conn.WriteMessage(gorilla.TextMessage, []byte(`{"kind":"nonsense"}`)); err != nil {
				return
			}
			reply, _ := wire.EncodeInbound(wire.QueryResponse{Result: wire.NotHandled()})
			if err := conn.WriteMessage(gorilla.TextMessage, reply); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestClientRoundTrip(t *testing.T) {
	srv := answeringServer(t)
	client := NewClient(wsURL(srv))

	received := make(chan wire.Inbound, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errs := make(chan error, 1)
	go func() {
		errs <- client.Run(ctx, func(_ context.Context, msg wire.Inbound) error {
			received <- msg
			return nil
		})
	}()

	next := func() wire.Inbound {
		t.Helper()
		select {
		case msg := <-received:
			return msg
		case <-time.After(waitTimeout):
			t.Fatal("timed out waiting for inbound message")
			return nil
		}
	}

	if _, ok := next().(wire.Connected); !ok {
		t.Fatal("expected Connected first")
	}
	if err := client.Send(ctx, wire.Query{Parameter: wire.ConferencesQuery()}); err != nil {
		t.Fatalf("send: %v", err)
	}
	resp, ok := next().(wire.QueryResponse)
	if !ok || resp.Result.Handled {
		t.Fatalf("inbound = %#v, want NotHandled response", resp)
	}

	cancel()
	select {
	case err := <-errs:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("run err = %v, want context.Canceled", err)
		}
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for Run to return")
	}
}

func TestUnknownEventTypeEndsRun(t *testing.T) {
	upgrader := gorilla.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		batch := `{"kind":"events","header":{"transaction_id":"tx-1","stream_id":"8d0d7c56-3b1a-4f10-9e7e-0c4a1f2b3c4d"},"events":[{"type":"talk_scheduled"}]}`
		if err := conn.WriteMessage(gorilla.TextMessage, []byte(batch)); err != nil {
			return
		}
		reply, _ := wire.EncodeInbound(wire.QueryResponse{Result: wire.NotHandled()})
		if err := conn.WriteMessage(gorilla.TextMessage, reply); err != nil {
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	var delivered []wire.Inbound
	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	err := NewClient(wsURL(srv)).Run(ctx, func(_ context.Context, msg wire.Inbound) error {
		delivered = append(delivered, msg)
		return nil
	})
	if !errors.Is(err, ErrProtocolMismatch) || !errors.Is(err, event.ErrUnknownName) {
		t.Fatalf("err = %v, want ErrProtocolMismatch wrapping ErrUnknownName", err)
	}
	if len(delivered) != 1 {
		t.Fatalf("delivered = %#v, want only Connected", delivered)
	}
	if _, ok := delivered[0].(wire.Connected); !ok {
		t.Fatalf("delivered[0] = %#v, want Connected", delivered[0])
	}
}

func TestClientDialFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := NewClient(wsURL(srv)).Run(context.Background(), func(context.Context, wire.Inbound) error {
		t.Fatal("deliver must not be called when dial fails")
		return nil
	})
	if err == nil {
		t.Fatal("expected dial error")
	}
}

func TestSendReportsFullQueue(t *testing.T) {
	client := NewClient("ws://unused", WithQueueSize(1))
	ctx := context.Background()
	if err := client.Send(ctx, wire.Query{Parameter: wire.OrganizersQuery()}); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := client.Send(ctx, wire.Query{Parameter: wire.OrganizersQuery()}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("second send err = %v, want ErrQueueFull", err)
	}
}

func TestSendRejectsUnencodableMessage(t *testing.T) {
	if err := NewClient("ws://unused").Send(context.Background(), nil); !errors.Is(err, wire.ErrMessageRequired) {
		t.Fatalf("err = %v, want ErrMessageRequired", err)
	}
}
