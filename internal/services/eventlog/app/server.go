package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/confplan/internal/platform/telemetry/metrics"
	"github.com/louisbranch/confplan/internal/platform/timeouts"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage/memory"
	"github.com/louisbranch/confplan/internal/services/eventlog/storage/sqlite"
	"github.com/louisbranch/confplan/internal/services/planner/wire"
)

// Config defines the inputs for the event log process.
type Config struct {
	// HTTPAddr is the listen address for /ws, /metrics and /healthz.
	HTTPAddr string
	// DBPath is the SQLite journal. Empty keeps the log in memory.
	DBPath string
	// Seed schedules a demo conference when the log is empty.
	Seed              bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the event log HTTP/WebSocket process.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	store           storage.Store
	service         *Service
}

// NewServer opens storage, builds the service, and wires routes.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	store, err := openStore(ctx, config.DBPath)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewEventlog(registry)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	service, err := NewService(store, WithMetrics(recorder))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if config.Seed {
		if err := Seed(ctx, service); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           NewHandler(service, recorder, registry),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		store:   store,
		service: service,
	}, nil
}

func openStore(ctx context.Context, path string) (storage.Store, error) {
	if strings.TrimSpace(path) == "" {
		log.Printf("no database path configured, keeping the event log in memory")
		return memory.New(), nil
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	return store, nil
}

// NewHandler routes the event log endpoints. A nil gatherer disables
// /metrics.
func NewHandler(service *Service, recorder *metrics.Eventlog, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
	ws := websocket.Server{
		// Planners dial from native clients that send no Origin header.
		Handshake: func(*websocket.Config, *http.Request) error { return nil },
		Handler: func(conn *websocket.Conn) {
			service.serveConn(conn, recorder)
		},
	}
	r.Method(http.MethodGet, "/ws", ws)
	return r
}

func (s *Service) serveConn(conn *websocket.Conn, recorder *metrics.Eventlog) {
	defer func() {
		_ = conn.Close()
	}()
	ctx, cancel := context.WithCancel(conn.Request().Context())
	defer cancel()

	p := newPeer()
	s.hub.join(p)
	recorder.ConnectionOpened()
	defer func() {
		s.hub.leave(p)
		recorder.ConnectionClosed()
	}()
	go writeFrames(ctx, conn, p)

	for {
		var data []byte
		if err := websocket.Message.Receive(conn, &data); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				log.Printf("read planner frame: %v", err)
			}
			return
		}
		msg, err := wire.DecodeOutbound(data)
		if err != nil {
			log.Printf("discard planner frame: %v", err)
			recorder.CommandHandled("", metrics.OutcomeMalformed, 0)
			continue
		}
		switch m := msg.(type) {
		case wire.Query:
			result, err := s.Query(ctx, m.Parameter)
			if err != nil {
				log.Printf("query %s: %v", m.Parameter.Kind, err)
			}
			frame, err := wire.EncodeInbound(wire.QueryResponse{Result: result})
			if err != nil {
				log.Printf("encode query response: %v", err)
				continue
			}
			if !p.offer(frame) {
				log.Printf("drop query response for slow peer")
			}
		case wire.Command:
			if _, err := s.HandleCommand(ctx, m.Header, m.Command); err != nil {
				log.Printf("command %s (%s): %v", m.Command.Name(), m.Header.TransactionID, err)
			}
		}
	}
}

func writeFrames(ctx context.Context, conn *websocket.Conn, p *peer) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-p.send:
			_ = conn.SetWriteDeadline(time.Now().Add(timeouts.WebsocketWrite))
			if err := websocket.Message.Send(conn, string(frame)); err != nil {
				log.Printf("write planner frame: %v", err)
				_ = conn.Close()
				return
			}
		}
	}
}

// Run creates and serves an event log until the context ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(ctx, config)
	if err != nil {
		return fmt.Errorf("init eventlog server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve eventlog: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("eventlog server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until the context ends.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	log.Printf("eventlog server listening on %s", listener.Addr())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// Close releases the store. It is nil-safe.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}
