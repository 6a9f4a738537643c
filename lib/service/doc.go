// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package service provides the Unix socket transport used to reach a
// running mathfs daemon without a FUSE mount.
//
// The protocol is one CBOR request and one CBOR response per
// connection. A request is a CBOR map with an "action" field naming
// the handler plus handler-specific fields. The response envelope is
// [Response]: {ok: true, data: ...} on success, {ok: false, error:
// "..."} on failure. CBOR is self-delimiting, so no framing is needed.
//
//   - [SocketServer] accepts connections, routes by action, enforces
//     read and write deadlines, and drains in-flight handlers on
//     shutdown.
//   - [ServiceClient] opens a connection per call and decodes the
//     response, returning [*ServiceError] for ok=false responses.
//   - [NewLogger] builds the daemon's structured logger.
//
// Access control is the socket file's permissions. There is no
// caller authentication.
package service
