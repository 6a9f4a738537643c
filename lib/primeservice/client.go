// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primeservice

import (
	"context"
	"errors"

	"github.com/mathfs/mathfs/lib/primefile"
	"github.com/mathfs/mathfs/lib/service"
)

// Client performs prime file operations against a daemon socket.
type Client struct {
	service *service.ServiceClient
}

// NewClient returns a client for the daemon socket at socketPath.
func NewClient(socketPath string) *Client {
	return &Client{service: service.NewServiceClient(socketPath)}
}

// SocketPath returns the socket the client dials.
func (c *Client) SocketPath() string {
	return c.service.SocketPath()
}

// Read returns up to length bytes of the prime file starting at
// offset. A read at offset zero advances the counter.
func (c *Client) Read(ctx context.Context, offset int64, length int) ([]byte, error) {
	var result ReadResult
	err := c.service.Call(ctx, ActionRead, map[string]any{
		"offset": offset,
		"length": length,
	}, &result)
	if err != nil {
		return nil, mapError(err)
	}
	return result.Data, nil
}

// ReadAll reads the prime file the way cat(1) does: one read at
// offset zero, then reads at increasing offsets until one returns no
// bytes. chunk bounds each read.
func (c *Client) ReadAll(ctx context.Context, chunk int) ([]byte, error) {
	if chunk <= 0 {
		chunk = DefaultReadLength
	}
	var contents []byte
	for {
		data, err := c.Read(ctx, int64(len(contents)), chunk)
		if err != nil {
			return contents, err
		}
		if len(data) == 0 {
			return contents, nil
		}
		contents = append(contents, data...)
	}
}

// Write writes data to the prime file at offset and returns the
// number of bytes accepted.
func (c *Client) Write(ctx context.Context, offset int64, data []byte) (int, error) {
	var result WriteResult
	err := c.service.Call(ctx, ActionWrite, map[string]any{
		"offset": offset,
		"data":   data,
	}, &result)
	if err != nil {
		return 0, mapError(err)
	}
	return result.Written, nil
}

// Next advances the counter to the next prime and returns it.
func (c *Client) Next(ctx context.Context) (int64, error) {
	var result NextResult
	if err := c.service.Call(ctx, ActionNext, nil, &result); err != nil {
		return 0, mapError(err)
	}
	return result.Value, nil
}

// Status returns the counter state without advancing it.
func (c *Client) Status(ctx context.Context) (*StatusResult, error) {
	var result StatusResult
	if err := c.service.Call(ctx, ActionStatus, nil, &result); err != nil {
		return nil, mapError(err)
	}
	return &result, nil
}

// remoteError is a service error whose message names a primefile
// sentinel. It matches both with errors.Is / errors.As.
type remoteError struct {
	*service.ServiceError
	sentinel error
}

func (e *remoteError) Unwrap() []error {
	return []error{e.ServiceError, e.sentinel}
}

func mapError(err error) error {
	var serviceErr *service.ServiceError
	if !errors.As(err, &serviceErr) {
		return err
	}
	sentinel := primefile.ErrorFromMessage(serviceErr.Message)
	if sentinel == nil {
		return err
	}
	return &remoteError{ServiceError: serviceErr, sentinel: sentinel}
}
