// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mathfs/mathfs/lib/codec"
	"github.com/mathfs/mathfs/lib/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// startServer runs server.Serve until the test ends and waits for the
// listener to be ready.
func startServer(t *testing.T, server *SocketServer) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		if err := testutil.RequireReceive(t, done, 5*time.Second, "waiting for Serve to return"); err != nil {
			t.Errorf("Serve returned error: %v", err)
		}
	})

	testutil.RequireClosed(t, server.Ready(), 5*time.Second, "waiting for socket server")
}

func testSocketPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(testutil.SocketDir(t), "test.sock")
}

// sendRequest connects to a Unix socket, sends a CBOR request, and
// returns the decoded response envelope.
func sendRequest(t *testing.T, socketPath string, request any) Response {
	t.Helper()

	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to socket: %v", err)
	}
	defer conn.Close()

	if err := codec.NewEncoder(conn).Encode(request); err != nil {
		t.Fatalf("writing request: %v", err)
	}
	if unixConn, ok := conn.(*net.UnixConn); ok {
		unixConn.CloseWrite()
	}

	var response Response
	if err := codec.NewDecoder(conn).Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return response
}

func TestSocketServerDispatches(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	server.Handle("status", func(ctx context.Context, raw []byte) (any, error) {
		return map[string]any{"value": 7}, nil
	})
	startServer(t, server)

	response := sendRequest(t, socketPath, map[string]string{"action": "status"})
	if !response.OK {
		t.Fatalf("expected ok=true, got error %q", response.Error)
	}

	var data map[string]any
	if err := codec.Unmarshal(response.Data, &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if data["value"] != uint64(7) {
		t.Errorf("value = %v (%T), want 7", data["value"], data["value"])
	}
}

func TestSocketServerUnknownAction(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	startServer(t, server)

	response := sendRequest(t, socketPath, map[string]string{"action": "unlink"})
	if response.OK {
		t.Fatal("expected ok=false for unknown action")
	}
	if response.Error != `unknown action "unlink"` {
		t.Errorf("error = %q", response.Error)
	}
}

func TestSocketServerMissingAction(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	startServer(t, server)

	response := sendRequest(t, socketPath, map[string]string{"offset": "0"})
	if response.OK || response.Error != "missing required field: action" {
		t.Errorf("response = %+v, want missing action error", response)
	}
}

func TestSocketServerInvalidCBOR(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	startServer(t, server)

	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer conn.Close()

	// 0xff is a CBOR "break" outside any indefinite-length item.
	if _, err := conn.Write([]byte{0xff}); err != nil {
		t.Fatalf("writing: %v", err)
	}
	conn.(*net.UnixConn).CloseWrite()

	var response Response
	if err := codec.NewDecoder(conn).Decode(&response); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if response.OK {
		t.Error("expected ok=false for invalid CBOR")
	}
}

func TestSocketServerHandlerError(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	server.Handle("write", func(ctx context.Context, raw []byte) (any, error) {
		return nil, errors.New("invalid offset: 3")
	})
	startServer(t, server)

	response := sendRequest(t, socketPath, map[string]string{"action": "write"})
	if response.OK || response.Error != "invalid offset: 3" {
		t.Errorf("response = %+v, want handler error", response)
	}
}

func TestSocketServerNilResult(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	server.Handle("noop", func(ctx context.Context, raw []byte) (any, error) {
		return nil, nil
	})
	startServer(t, server)

	response := sendRequest(t, socketPath, map[string]string{"action": "noop"})
	if !response.OK || len(response.Data) != 0 {
		t.Errorf("response = %+v, want ok with no data", response)
	}
}

func TestSocketServerDuplicateHandlerPanics(t *testing.T) {
	server := NewSocketServer("/tmp/unused.sock", testLogger())
	server.Handle("read", func(ctx context.Context, raw []byte) (any, error) { return nil, nil })

	defer func() {
		if recover() == nil {
			t.Error("expected panic for duplicate handler")
		}
	}()
	server.Handle("read", func(ctx context.Context, raw []byte) (any, error) { return nil, nil })
}

func TestSocketServerRemovesStaleSocket(t *testing.T) {
	socketPath := testSocketPath(t)
	if err := os.WriteFile(socketPath, []byte("stale"), 0o600); err != nil {
		t.Fatalf("writing stale file: %v", err)
	}

	server := NewSocketServer(socketPath, testLogger())
	server.Handle("noop", func(ctx context.Context, raw []byte) (any, error) { return nil, nil })
	startServer(t, server)

	if response := sendRequest(t, socketPath, map[string]string{"action": "noop"}); !response.OK {
		t.Errorf("request after stale socket removal failed: %q", response.Error)
	}
}

func TestSocketServerConcurrentRequests(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())

	var mu sync.Mutex
	count := 0
	server.Handle("next", func(ctx context.Context, raw []byte) (any, error) {
		mu.Lock()
		defer mu.Unlock()
		count++
		return count, nil
	})
	startServer(t, server)

	const clients = 16
	var waitGroup sync.WaitGroup
	for range clients {
		waitGroup.Add(1)
		go func() {
			defer waitGroup.Done()
			client := NewServiceClient(socketPath)
			var value int
			if err := client.Call(context.Background(), "next", nil, &value); err != nil {
				t.Errorf("Call: %v", err)
			}
		}()
	}
	waitGroup.Wait()

	mu.Lock()
	defer mu.Unlock()
	if count != clients {
		t.Errorf("handler ran %d times, want %d", count, clients)
	}
}
