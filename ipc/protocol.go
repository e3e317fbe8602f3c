// Package ipc exposes the playback transport on a unix socket.
//
// The protocol follows mpv's JSON IPC: each request is one line
// {"command": ["name", args...], "request_id": N} and each response is one
// line {"data": ..., "request_id": N, "error": "success"}.
package ipc

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("ipc: not connected")
	// ErrSocketNotFound is returned when no editor is listening on the socket.
	ErrSocketNotFound = errors.New("ipc: socket not found - is `splice open` running?")
	// ErrUnknownCommand is returned for commands the server does not implement.
	ErrUnknownCommand = errors.New("ipc: unknown command")
)

const errSuccess = "success"

// request is a JSON IPC request.
type request struct {
	Command   []any  `json:"command"`
	RequestID uint64 `json:"request_id"`
}

// response is a JSON IPC response.
type response struct {
	Data      any    `json:"data"`
	RequestID uint64 `json:"request_id"`
	Error     string `json:"error"`
}

// Commands understood by the server.
const (
	CmdToggle      = "toggle"
	CmdStepBack    = "step_back"
	CmdStepForward = "step_forward"
	CmdLoad        = "load"
	CmdGetProperty = "get_property"
)

// Properties readable through get_property.
const (
	PropMode     = "mode"
	PropPosition = "position"
	PropFPS      = "fps"
	PropVideo    = "video"
)

// toInt converts a decoded JSON number to int.
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("ipc: expected integer, got %g", n)
		}
		return int(n), nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("ipc: unexpected numeric value type: %T", v)
	}
}

// toFloat64 converts a decoded JSON number to float64.
func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("ipc: unexpected numeric value type: %T", v)
	}
}
