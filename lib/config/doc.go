// Copyright 2026 The Mathfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads mathfsd configuration.
//
// Configuration is read from a single file named by either the
// MATHFS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no search path. A daemon started without
// either runs on [Default] plus its flags.
//
// The file is YAML. Files ending in .json or .jsonc are accepted too:
// comments and trailing commas are stripped before parsing.
//
// Environment-specific sections (development, staging, production)
// override base values when [Config].Environment matches. Production
// without its own section logs at warn.
//
// ${HOME}, ${XDG_RUNTIME_DIR}, and ${VAR:-default} patterns are
// expanded in the mountpoint and socket path after loading.
package config
