// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

package primeservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mathfs/mathfs/lib/codec"
	"github.com/mathfs/mathfs/lib/primefile"
	"github.com/mathfs/mathfs/lib/service"
)

// Register installs the prime file actions on server. Every action
// operates on file, which is shared with any other surface serving it.
func Register(server *service.SocketServer, file *primefile.File, logger *slog.Logger) {
	handlers := &handlers{file: file, logger: logger}
	server.Handle(ActionRead, handlers.read)
	server.Handle(ActionWrite, handlers.write)
	server.Handle(ActionNext, handlers.next)
	server.Handle(ActionStatus, handlers.status)
}

type handlers struct {
	file   *primefile.File
	logger *slog.Logger
}

// decode unmarshals a request body. A body that cannot be decoded is
// reported as a copy fault: the caller's bytes could not be taken in.
func decode(raw []byte, request any) error {
	if err := codec.Unmarshal(raw, request); err != nil {
		return fmt.Errorf("%w: decoding request: %v", primefile.ErrCopyFault, err)
	}
	return nil
}

func (h *handlers) read(_ context.Context, raw []byte) (any, error) {
	var request ReadRequest
	if err := decode(raw, &request); err != nil {
		return nil, err
	}
	length := DefaultReadLength
	if request.Length != nil {
		length = *request.Length
	}

	data, err := h.file.Read(request.Offset, length)
	if err != nil {
		return nil, err
	}
	if request.Offset == 0 {
		h.logger.Debug("prime served", "value", string(data))
	}
	return ReadResult{Data: data}, nil
}

func (h *handlers) write(_ context.Context, raw []byte) (any, error) {
	var request WriteRequest
	if err := decode(raw, &request); err != nil {
		return nil, err
	}

	written, err := h.file.Write(request.Offset, request.Data)
	if err != nil {
		return nil, err
	}
	h.logger.Info("prime counter set", "value", h.file.Value())
	return WriteResult{Written: written}, nil
}

func (h *handlers) next(_ context.Context, _ []byte) (any, error) {
	data, err := h.file.Read(0, primefile.MaxWriteSize)
	if err != nil {
		return nil, err
	}
	return NextResult{Value: primefile.ParseDecimal(data)}, nil
}

func (h *handlers) status(_ context.Context, _ []byte) (any, error) {
	return StatusResult{
		Name:         primefile.Name,
		Value:        h.file.Value(),
		Sequencing:   h.file.Sequencing().String(),
		MaxWriteSize: primefile.MaxWriteSize,
	}, nil
}
