// Package websocket carries planner wire frames over a WebSocket connection
// to the event log.
package websocket

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	gorilla "github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/confplan/internal/platform/timeouts"
	"github.com/louisbranch/confplan/internal/services/planner/domain/event"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

const defaultQueueSize = 32

var (
	// ErrQueueFull indicates an outbound message dropped because the write
	// pump is behind.
	ErrQueueFull = errors.New("websocket send queue is full")
	// ErrProtocolMismatch indicates a confirmation carrying an event type this
	// client cannot project. The connection is abandoned.
	ErrProtocolMismatch = errors.New("event log sent an unknown event type")
)

// Deliver hands one decoded inbound message to the session.
type Deliver func(ctx context.Context, msg wire.Inbound) error

// Client is a planner connection to the event log. Send may be called from
// any goroutine; Run owns the connection.
type Client struct {
	url    string
	dialer *gorilla.Dialer
	header http.Header
	send   chan []byte
}

// Option configures a Client.
type Option func(*Client)

// WithDialer replaces gorilla's default dialer.
func WithDialer(d *gorilla.Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

// WithHeader sets request headers sent on the handshake.
func WithHeader(h http.Header) Option {
	return func(c *Client) { c.header = h.Clone() }
}

// WithQueueSize sets how many outbound frames may wait for the write pump.
func WithQueueSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.send = make(chan []byte, n)
		}
	}
}

// NewClient returns a client for the event log at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:    url,
		dialer: gorilla.DefaultDialer,
		send:   make(chan []byte, defaultQueueSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send encodes msg and queues it for the write pump without waiting for
// the network.
func (c *Client) Send(ctx context.Context, msg wire.Outbound) error {
	data, err := wire.EncodeOutbound(msg)
	if err != nil {
		return err
	}
	select {
	case c.send <- data:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrQueueFull
	}
}

// Run dials the event log, reports Connected, and pumps frames until ctx is
// done or the connection fails. Unknown frame kinds and malformed frames are
// logged and skipped; an unknown event type ends Run with
// ErrProtocolMismatch.
func (c *Client) Run(ctx context.Context, deliver Deliver) error {
	if deliver == nil {
		return errors.New("deliver is required")
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeouts.WebsocketDial)
	conn, _, err := c.dialer.DialContext(dialCtx, c.url, c.header)
	cancel()
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.url, err)
	}
	if err := deliver(ctx, wire.Connected{}); err != nil {
		conn.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.writePump(gctx, conn) })
	g.Go(func() error { return readPump(gctx, conn, deliver) })
	err = g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// writePump closes conn on return, which unblocks the read pump.
func (c *Client) writePump(ctx context.Context, conn *gorilla.Conn) error {
	defer conn.Close()
	for {
		select {
		case <-ctx.Done():
			conn.SetWriteDeadline(time.Now().Add(timeouts.WebsocketWrite))
			conn.WriteMessage(gorilla.CloseMessage, gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""))
			return nil
		case data := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(timeouts.WebsocketWrite))
			if err := conn.WriteMessage(gorilla.TextMessage, data); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}
}

func readPump(ctx context.Context, conn *gorilla.Conn, deliver Deliver) error {
	for {
		op, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read frame: %w", err)
		}
		if op != gorilla.TextMessage {
			continue
		}
		msg, err := wire.DecodeInbound(data)
		if errors.Is(err, event.ErrUnknownName) {
			return fmt.Errorf("%w: %w", ErrProtocolMismatch, err)
		}
		if err != nil {
			log.Printf("drop inbound frame: %v", err)
			continue
		}
		if err := deliver(ctx, msg); err != nil {
			return err
		}
	}
}
