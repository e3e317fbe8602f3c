package ipc

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/user/splice-cli/source"
	"github.com/user/splice-cli/transport"
)

// Player is the transport control surface served over the socket.
type Player interface {
	Toggle() transport.Mode
	StepBack() bool
	StepForward() bool
	Load(src source.Source, start int) error
	Mode() transport.Mode
	Position() int
	Info() (source.Info, bool)
}

// Library opens catalog videos by id.
type Library interface {
	Open(id int) (source.Source, error)
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger. The default discards everything.
func WithServerLogger(l *zap.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithLoadHook registers fn to run after a successful load command.
func WithLoadHook(fn func(videoID, start int)) ServerOption {
	return func(s *Server) { s.onLoad = fn }
}

// Server answers transport commands on a unix socket.
type Server struct {
	socketPath string
	player     Player
	library    Library
	log        *zap.Logger
	onLoad     func(videoID, start int)

	mu     sync.Mutex
	ln     net.Listener
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewServer returns a server for player. library may be nil, in which case
// load is rejected.
func NewServer(socketPath string, player Player, library Library, opts ...ServerOption) *Server {
	s := &Server{
		socketPath: socketPath,
		player:     player,
		library:    library,
		log:        zap.NewNop(),
		conns:      make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start listens on the socket and serves connections in the background. A
// stale socket file left by a previous session is removed first.
func (s *Server) Start() error {
	if err := removeStale(s.socketPath); err != nil {
		return err
	}
	ln, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.socketPath, err)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.wg.Add(1)
	go s.acceptLoop(ln)
	s.log.Info("control socket listening", zap.String("path", s.socketPath))
	return nil
}

// removeStale deletes path if it is a socket nobody is listening on.
func removeStale(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if conn, err := net.Dial("unix", path); err == nil {
		conn.Close()
		return fmt.Errorf("ipc: %s is in use by another session", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove stale socket: %w", err)
	}
	return nil
}

func (s *Server) acceptLoop(ln net.Listener) {
	defer s.wg.Done()
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.serveConn(conn)
	}
}

func (s *Server) serveConn(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()
	s.log.Debug("control client connected")

	scanner := bufio.NewScanner(conn)
	enc := json.NewEncoder(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.log.Warn("malformed control request", zap.ByteString("line", line), zap.Error(err))
			if err := enc.Encode(response{Error: "invalid request"}); err != nil {
				return
			}
			continue
		}
		data, err := s.handle(req.Command)
		resp := response{Data: data, RequestID: req.RequestID, Error: errSuccess}
		if err != nil {
			resp.Data = nil
			resp.Error = err.Error()
		}
		if err := enc.Encode(resp); err != nil {
			return
		}
	}
}

// handle runs one command and returns its data.
func (s *Server) handle(cmd []any) (any, error) {
	if len(cmd) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrUnknownCommand)
	}
	name, _ := cmd[0].(string)
	args := cmd[1:]

	switch name {
	case CmdToggle:
		return s.player.Toggle().String(), nil
	case CmdStepBack:
		return s.player.StepBack(), nil
	case CmdStepForward:
		return s.player.StepForward(), nil
	case CmdLoad:
		return nil, s.load(args)
	case CmdGetProperty:
		if len(args) != 1 {
			return nil, fmt.Errorf("get_property: want 1 argument, got %d", len(args))
		}
		prop, _ := args[0].(string)
		return s.property(prop)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownCommand, cmd[0])
}

func (s *Server) load(args []any) error {
	if s.library == nil {
		return errors.New("load: no video library")
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("load: want video id and optional start frame, got %d arguments", len(args))
	}
	id, err := toInt(args[0])
	if err != nil {
		return fmt.Errorf("load: video id: %w", err)
	}
	start := 0
	if len(args) == 2 {
		if start, err = toInt(args[1]); err != nil {
			return fmt.Errorf("load: start frame: %w", err)
		}
	}
	src, err := s.library.Open(id)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	if err := s.player.Load(src, start); err != nil {
		src.Close()
		return fmt.Errorf("load: %w", err)
	}
	s.log.Info("loaded over control socket", zap.Int("video", id), zap.Int("start", start))
	if s.onLoad != nil {
		s.onLoad(id, start)
	}
	return nil
}

func (s *Server) property(name string) (any, error) {
	switch name {
	case PropMode:
		return s.player.Mode().String(), nil
	case PropPosition:
		return s.player.Position(), nil
	case PropFPS:
		info, ok := s.player.Info()
		if !ok {
			return nil, errors.New("property unavailable: no video loaded")
		}
		return info.FPS, nil
	case PropVideo:
		info, ok := s.player.Info()
		if !ok {
			return nil, errors.New("property unavailable: no video loaded")
		}
		return map[string]any{
			"frames": info.TotalFrames,
			"fps":    info.FPS,
			"width":  info.Width,
			"height": info.Height,
		}, nil
	}
	return nil, fmt.Errorf("property not found: %q", name)
}

// Close stops accepting, closes open connections, waits for their handlers
// and removes the socket file.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	ln := s.ln
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	var err error
	if ln != nil {
		err = ln.Close()
	}
	s.wg.Wait()
	if ln != nil {
		if rmErr := os.Remove(s.socketPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}
	return err
}
