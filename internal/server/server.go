package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

// Default per-method timeouts, matching the direct hook binaries.
const (
	defaultVetTimeout    = 30 * time.Second
	defaultFormatTimeout = 15 * time.Second
)

// ServerDependencies holds all dependencies for the server.
type ServerDependencies struct {
	VetRunner    VetRunner
	FormatRunner FormatRunner
	LockManager  LockManager
	Logger       Logger
}

// Server accepts hook requests over a Unix socket so repeated hook
// invocations avoid process startup cost.
type Server struct {
	socketPath string
	listener   net.Listener

	// Graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	deps *ServerDependencies

	stats *ServerStats
}

// ServerStats tracks server statistics.
type ServerStats struct {
	mu           sync.RWMutex
	requestCount int64
	errorCount   int64
	activeConns  int32
	startTime    time.Time
}

// NewServer creates a new server with injected dependencies.
func NewServer(socketPath string, deps *ServerDependencies) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		socketPath: socketPath,
		ctx:        ctx,
		cancel:     cancel,
		deps:       deps,
		stats:      &ServerStats{startTime: time.Now()},
	}
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), 0700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}

	// Remove old socket if exists
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on socket: %w", err)
	}
	s.listener = listener

	// Socket is owner-only, it accepts unauthenticated commands.
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("chmod socket: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		s.deps.Logger.Println("Shutting down server...")
		s.Shutdown()
	}()

	s.deps.Logger.Printf("Server listening on %s", s.socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.ctx.Done():
				return nil // Clean shutdown
			default:
				s.deps.Logger.Printf("Accept error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection processes a client connection.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	s.stats.mu.Lock()
	s.stats.activeConns++
	s.stats.mu.Unlock()

	defer func() {
		s.stats.mu.Lock()
		s.stats.activeConns--
		s.stats.mu.Unlock()
	}()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		conn.SetReadDeadline(time.Now().Add(30 * time.Second))

		var req Request
		if err := decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || os.IsTimeout(err) {
				return
			}
			encoder.Encode(NewErrorResponse(RequestID{}, ParseError, "Parse error"))
			return
		}

		s.stats.mu.Lock()
		s.stats.requestCount++
		s.stats.mu.Unlock()

		resp := s.processRequest(req)

		if err := encoder.Encode(resp); err != nil {
			return
		}
	}
}

// processRequest handles a single request.
func (s *Server) processRequest(req Request) Response {
	s.deps.Logger.Printf("Processing %s request (ID: %s)", req.Method, req.ID.value)

	if req.JSONRPC != jsonRPCVersion {
		return NewErrorResponse(req.ID, InvalidRequest, "Invalid Request")
	}

	var resp Response
	start := time.Now()

	switch req.Method {
	case "vet":
		resp = s.handleRun(req, s.deps.VetRunner, "vet", defaultVetTimeout)
	case "fmt":
		resp = s.handleRun(req, s.deps.FormatRunner, "fmt", defaultFormatTimeout)
	case "stats":
		resp = s.handleStats(req)
	default:
		resp = NewErrorResponse(req.ID, MethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}

	duration := time.Since(start)
	if resp.Error != nil {
		s.deps.Logger.Printf("%s failed in %v: %s", req.Method, duration, resp.Error.Message)
	} else {
		s.deps.Logger.Printf("%s completed in %v", req.Method, duration)
	}

	return resp
}

// handleRun processes a vet or fmt request through its runner.
func (s *Server) handleRun(req Request, runner Runner, method string, defaultTimeout time.Duration) Response {
	var params MethodParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return NewErrorResponse(req.ID, InvalidParams, fmt.Sprintf("Invalid params: %v", err))
		}
	}

	// Serialize per-project runs when the client names one.
	if params.Project != "" {
		lockKey := fmt.Sprintf("%s:%s", params.Project, method)
		if !s.deps.LockManager.Acquire(lockKey, "server") {
			return NewErrorResponse(req.ID, InternalError, "Resource locked")
		}
		defer s.deps.LockManager.Release(lockKey)
	}

	timeout := defaultTimeout
	if params.Timeout > 0 {
		timeout = time.Duration(params.Timeout) * time.Second
	}
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	result, err := runner.Run(ctx, strings.NewReader(params.Input))
	if err != nil {
		s.stats.mu.Lock()
		s.stats.errorCount++
		s.stats.mu.Unlock()
		return NewErrorResponse(req.ID, InternalError, err.Error())
	}

	return NewSuccessResponse(req.ID, &Result{
		Output:      result.Output,
		Diagnostics: result.Diagnostics,
		Meta:        map[string]string{"via": "server"},
	})
}

// handleStats returns server statistics.
func (s *Server) handleStats(req Request) Response {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	uptime := time.Since(s.stats.startTime).Round(time.Second)
	stats := fmt.Sprintf("Server Stats:\n"+
		"  Uptime: %v\n"+
		"  Requests: %d\n"+
		"  Errors: %d\n"+
		"  Active Connections: %d\n"+
		"  Socket: %s",
		uptime, s.stats.requestCount, s.stats.errorCount,
		s.stats.activeConns, s.socketPath)

	return NewSuccessResponse(req.ID, &Result{Output: stats})
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() {
	s.cancel() // Signal shutdown

	if s.listener != nil {
		s.listener.Close()
	}

	// Wait for active connections
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.deps.Logger.Println("Clean shutdown completed")
	case <-time.After(5 * time.Second):
		s.deps.Logger.Println("Forced shutdown after timeout")
	}

	os.Remove(s.socketPath)
}
