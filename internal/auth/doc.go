// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package auth provides account registration and authentication for
// ChatGraph.
//
// # Domain Types
//
// User is the persisted account record. Identity is the per-request
// authenticated caller, reconstructed from a verified token; it has no
// lifecycle beyond the request that carries it.
//
// # Services
//
// Service orchestrates register and login. TokenService issues and
// verifies signed identity tokens. PasswordHasher hashes and verifies
// credentials behind an interface so the work factor stays a
// construction-time configuration value, never ambient state.
//
// Validation follows a collect-all contract: every applicable rule runs
// and all failures are reported in one FieldErrors map. Username and
// email uniqueness are deliberately not pre-checked here; the storage
// layer's unique constraints are the sole guarantee and violations are
// translated into field errors after the fact.
package auth
