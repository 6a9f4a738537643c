// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding configuration shared by the
// mathfs socket protocol.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// decoder maps untyped CBOR maps to map[string]any so decoded values
// interoperate with encoding/json.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (sockets):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct Tag Rules
//
// A `cbor` tag marks a type that is only ever CBOR (the socket
// envelope). A `json` tag marks a type that is both CBOR on the socket
// and JSON in CLI --json output; fxamacker/cbor reads `json` tags when
// `cbor` tags are absent. Never put both on the same field.
package codec
