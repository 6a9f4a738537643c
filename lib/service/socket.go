// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/mathfs/mathfs/lib/codec"
)

// ActionFunc runs one action against the server's backing state. raw
// is the whole CBOR request map, "action" key included, so the
// handler can decode its own parameters from it. A nil result yields
// a bare {ok: true}; an error yields {ok: false} with err.Error() as
// the message.
type ActionFunc func(ctx context.Context, raw []byte) (any, error)

// Response is the envelope every reply is wrapped in.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}

// Each connection carries one request and one response. The deadlines
// keep a stalled peer from pinning a handler goroutine and with it
// the shutdown of Serve.
const (
	requestDeadline  = 30 * time.Second
	responseDeadline = 10 * time.Second

	// maxRequestBytes caps the decoder. A prime file write carries at
	// most MaxWriteSize bytes of payload, so real requests stay far
	// below this.
	maxRequestBytes = 64 * 1024
)

// SocketServer answers CBOR requests on a Unix socket by dispatching
// on the request's "action" field. Actions are registered with Handle
// before Serve starts.
type SocketServer struct {
	path    string
	actions map[string]ActionFunc
	logger  *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once

	// inflight counts connections still being answered.
	inflight sync.WaitGroup
}

// NewSocketServer returns a server that will listen on path.
func NewSocketServer(path string, logger *slog.Logger) *SocketServer {
	return &SocketServer{
		path:    path,
		actions: make(map[string]ActionFunc),
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

// Handle registers handler under action. Registering the same action
// twice panics.
func (s *SocketServer) Handle(action string, handler ActionFunc) {
	if _, exists := s.actions[action]; exists {
		panic(fmt.Sprintf("service.SocketServer: duplicate handler for action %q", action))
	}
	s.actions[action] = handler
}

// Ready is closed once Serve is accepting connections.
func (s *SocketServer) Ready() <-chan struct{} {
	return s.ready
}

// Serve listens on the socket path, replacing any stale socket file,
// and answers connections until ctx is cancelled. It then waits for
// in-flight connections and removes the socket file.
func (s *SocketServer) Serve(ctx context.Context) error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	defer os.Remove(s.path)
	defer listener.Close()

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	s.logger.Info("socket server listening", "path", s.path)
	s.readyOnce.Do(func() { close(s.ready) })

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				break
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		s.inflight.Go(func() { s.answer(ctx, conn) })
	}

	s.inflight.Wait()
	return nil
}

func (s *SocketServer) listen() (net.Listener, error) {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing stale socket %s: %w", s.path, err)
	}
	listener, err := net.Listen("unix", s.path)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", s.path, err)
	}
	return listener, nil
}

// answer reads the request on conn, runs its action and writes the
// reply. A client that connects and closes without a request gets no
// reply.
func (s *SocketServer) answer(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	raw, action, err := readRequest(conn)
	if errors.Is(err, io.EOF) {
		return
	}
	if err != nil {
		s.reply(conn, action, Response{Error: err.Error()})
		return
	}

	handler, exists := s.actions[action]
	if !exists {
		s.reply(conn, action, Response{Error: fmt.Sprintf("unknown action %q", action)})
		return
	}

	result, err := handler(ctx, raw)
	if err != nil {
		if s.logger.Enabled(ctx, slog.LevelDebug) {
			request, _ := codec.Diagnose(raw)
			s.logger.Debug("action failed", "action", action, "request", request, "error", err)
		}
		s.reply(conn, action, Response{Error: err.Error()})
		return
	}

	response := Response{OK: true}
	if result != nil {
		if response.Data, err = codec.Marshal(result); err != nil {
			s.reply(conn, action, Response{Error: fmt.Sprintf("internal: marshaling response: %v", err)})
			return
		}
	}
	s.reply(conn, action, response)
}

// readRequest decodes one CBOR value from conn and extracts its
// action name. io.EOF means the peer sent nothing.
func readRequest(conn net.Conn) (codec.RawMessage, string, error) {
	conn.SetReadDeadline(time.Now().Add(requestDeadline))

	var raw codec.RawMessage
	if err := codec.NewDecoder(io.LimitReader(conn, maxRequestBytes)).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, "", io.EOF
		}
		return nil, "", fmt.Errorf("invalid request: %v", err)
	}

	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		return nil, "", fmt.Errorf("invalid request: %v", err)
	}
	if header.Action == "" {
		return nil, "", errors.New("missing required field: action")
	}
	return raw, header.Action, nil
}

// reply writes response to conn. By the time a successful response
// is written the action has already run, so a reply that never
// arrives still leaves its effect on the counter; that case is logged
// as a warning. Lost error replies only matter at debug level.
func (s *SocketServer) reply(conn net.Conn, action string, response Response) {
	conn.SetWriteDeadline(time.Now().Add(responseDeadline))
	err := codec.NewEncoder(conn).Encode(response)
	if err == nil {
		return
	}
	if response.OK {
		s.logger.Warn("response not delivered; action already applied", "action", action, "error", err)
		return
	}
	s.logger.Debug("error response not delivered", "action", action, "error", err)
}
