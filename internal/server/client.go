// Package server provides a JSON-RPC server and client for gohooks.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDialTimeout is the default timeout for connecting to the server.
	DefaultDialTimeout = 5 * time.Second
)

// Client handles communication with the server.
type Client struct {
	socketPath  string
	dialTimeout time.Duration
}

// NewClient creates a new client instance with default timeout.
func NewClient(socketPath string) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	return &Client{
		socketPath:  socketPath,
		dialTimeout: DefaultDialTimeout,
	}
}

// NewClientWithTimeout creates a new client instance with custom timeout.
func NewClientWithTimeout(socketPath string, timeout time.Duration) *Client {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	return &Client{
		socketPath:  socketPath,
		dialTimeout: timeout,
	}
}

// DefaultSocketPath returns the default socket path.
func DefaultSocketPath() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, "gohooks.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("gohooks-%d.sock", os.Getuid()))
}

// Call executes a method on the server and returns the result.
func (c *Client) Call(method string, input string) (*Result, error) {
	if _, err := os.Stat(c.socketPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("server not running (socket not found: %s)", c.socketPath)
	}

	d := &net.Dialer{Timeout: c.dialTimeout}
	conn, err := d.DialContext(context.Background(), "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(c.dialTimeout)
	if deadlineErr := conn.SetDeadline(deadline); deadlineErr != nil {
		return nil, fmt.Errorf("set deadline: %w", deadlineErr)
	}

	params := MethodParams{
		Input: input,
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}

	req := Request{
		JSONRPC: jsonRPCVersion,
		ID:      RequestID{value: "1"},
		Method:  method,
		Params:  paramsJSON,
	}

	encoder := json.NewEncoder(conn)
	if encErr := encoder.Encode(req); encErr != nil {
		return nil, fmt.Errorf("send request: %w", encErr)
	}

	decoder := json.NewDecoder(conn)
	var resp Response
	if decErr := decoder.Decode(&resp); decErr != nil {
		return nil, fmt.Errorf("read response: %w", decErr)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("server error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	if resp.Result == nil {
		return nil, fmt.Errorf("no result in response")
	}

	return resp.Result, nil
}

// TryCallWithFallback runs a hook via the server when one is listening and
// falls back to direct in-process execution otherwise. The event bytes are
// read once by the caller so both paths see the same input. The hook
// contract holds either way: result output goes to stdout, diagnostics to
// stderr, and the return value is the process exit code.
func TryCallWithFallback(method string, input []byte, direct func(input []byte) int) int {
	debug := os.Getenv("CLAUDE_HOOKS_DEBUG") == "1"

	if os.Getenv("GOHOOKS_NO_SERVER") == "1" {
		if debug {
			fmt.Fprintf(os.Stderr, "Server disabled, using direct mode for %s\n", method)
		}
		return direct(input)
	}

	socketPath := os.Getenv("GOHOOKS_SOCKET")
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}

	client := NewClient(socketPath)

	result, err := client.Call(method, string(input))
	if err != nil {
		if debug {
			fmt.Fprintf(os.Stderr, "Server unavailable, using direct mode for %s (error: %v)\n", method, err)
		}
		return direct(input)
	}

	if result.Diagnostics != "" {
		fmt.Fprint(os.Stderr, result.Diagnostics)
	}
	fmt.Print(result.Output)
	return 0
}
