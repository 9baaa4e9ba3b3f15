package hooks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxInputBytes caps how much of the event stream is buffered. Bytes past the
// cap are drained so the host never sees a broken pipe, but they are dropped.
const MaxInputBytes = 1 << 20

// ErrNoInput indicates stdin is a terminal or the stream was empty.
var ErrNoInput = errors.New("no input provided")

// HookInput is the PostToolUse event Claude Code delivers on stdin.
type HookInput struct {
	HookEventName  string          `json:"hook_event_name,omitempty"`
	SessionID      string          `json:"session_id,omitempty"`
	TranscriptPath string          `json:"transcript_path,omitempty"`
	CWD            string          `json:"cwd,omitempty"`
	ToolName       string          `json:"tool_name,omitempty"`
	ToolInput      json.RawMessage `json:"tool_input,omitempty"`
	ToolResponse   json.RawMessage `json:"tool_response,omitempty"`
}

// GetFilePath extracts the edited file path from the tool input.
// NotebookEdit events carry notebook_path instead of file_path.
func (h *HookInput) GetFilePath() string {
	if len(h.ToolInput) == 0 {
		return ""
	}

	var toolInput map[string]any
	if err := json.Unmarshal(h.ToolInput, &toolInput); err != nil {
		return ""
	}

	if notebookPath, ok := toolInput["notebook_path"].(string); ok && notebookPath != "" {
		return notebookPath
	}
	if filePath, ok := toolInput["file_path"].(string); ok {
		return filePath
	}
	return ""
}

// ReadRawInput reads the event stream up to MaxInputBytes and drains the rest.
// The returned bytes are what the hook echoes back on stdout at exit.
func ReadRawInput(reader InputReader) ([]byte, error) {
	if reader.IsTerminal() {
		return nil, ErrNoInput
	}

	var buf bytes.Buffer
	n, err := io.CopyN(&buf, reader, MaxInputBytes)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if n == MaxInputBytes {
		// Cap reached. Consume the remainder so the writer finishes cleanly.
		_, _ = io.Copy(io.Discard, reader)
	}

	if buf.Len() == 0 {
		return nil, ErrNoInput
	}
	return buf.Bytes(), nil
}

// ParseHookInput decodes raw event bytes into a HookInput.
func ParseHookInput(raw []byte) (*HookInput, error) {
	var input HookInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, fmt.Errorf("parse hook input: %w", err)
	}
	return &input, nil
}
