package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Client talks to a running editor's control socket.
type Client struct {
	socketPath string
	timeout    time.Duration
	conn       net.Conn
	reader     *bufio.Reader
	mu         sync.Mutex
	requestID  atomic.Uint64
}

// NewClient creates a client for socketPath.
func NewClient(socketPath string) *Client {
	return &Client{socketPath: socketPath, timeout: 5 * time.Second}
}

// Connect dials the socket. Connecting twice is a no-op.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// IsConnected reports whether the client holds an open connection.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// SocketPath returns the socket path this client is configured to use.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Toggle flips play/pause and returns the new mode.
func (c *Client) Toggle() (string, error) {
	data, err := c.Command(CmdToggle)
	if err != nil {
		return "", err
	}
	return toString(data)
}

// StepBack steps one frame back and reports whether a frame was shown.
func (c *Client) StepBack() (bool, error) {
	data, err := c.Command(CmdStepBack)
	if err != nil {
		return false, err
	}
	return toBool(data)
}

// StepForward steps one frame forward and reports whether a frame was shown.
func (c *Client) StepForward() (bool, error) {
	data, err := c.Command(CmdStepForward)
	if err != nil {
		return false, err
	}
	return toBool(data)
}

// Load binds a catalog video, positioned so the next frame shown is start.
func (c *Client) Load(videoID, start int) error {
	_, err := c.Command(CmdLoad, videoID, start)
	return err
}

// GetProperty reads a property.
func (c *Client) GetProperty(name string) (any, error) {
	return c.Command(CmdGetProperty, name)
}

// GetMode returns "running" or "paused".
func (c *Client) GetMode() (string, error) {
	data, err := c.GetProperty(PropMode)
	if err != nil {
		return "", err
	}
	return toString(data)
}

// GetPosition returns the index of the frame last shown.
func (c *Client) GetPosition() (int, error) {
	data, err := c.GetProperty(PropPosition)
	if err != nil {
		return 0, err
	}
	return toInt(data)
}

// GetFPS returns the loaded video's frame rate.
func (c *Client) GetFPS() (float64, error) {
	data, err := c.GetProperty(PropFPS)
	if err != nil {
		return 0, err
	}
	return toFloat64(data)
}

// Command sends a command and waits for the response carrying its request id.
func (c *Client) Command(command string, args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}

	cmdArray := make([]any, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := c.requestID.Add(1)
	data, err := json.Marshal(request{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("ipc: failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	if c.timeout > 0 {
		c.conn.SetDeadline(time.Now().Add(c.timeout))
		defer c.conn.SetDeadline(time.Time{})
	}
	if _, err := c.conn.Write(data); err != nil {
		return nil, fmt.Errorf("ipc: failed to send command: %w", err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("ipc: failed to read response: %w", err)
		}
		var resp response
		if err := json.Unmarshal(line, &resp); err != nil {
			continue
		}
		if resp.RequestID != reqID {
			continue
		}
		if resp.Error != "" && resp.Error != errSuccess {
			return nil, fmt.Errorf("ipc: %s", resp.Error)
		}
		return resp.Data, nil
	}
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("ipc: unexpected string value type: %T", v)
	}
	return s, nil
}

func toBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("ipc: unexpected bool value type: %T", v)
	}
	return b, nil
}
