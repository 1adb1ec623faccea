// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ChatGraph Contributors

// Package gravatar derives avatar URLs from email addresses.
//
// The URL is computed once at registration and stored; it is never
// recomputed, so an email change in a future extension would leave the
// stored avatar stale.
package gravatar

import (
	"crypto/md5" //nolint:gosec // gravatar's protocol requires md5; not used for security
	"encoding/hex"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Default rendering options: 200px, PG-rated, "mystery person" fallback.
var defaultOptions = url.Values{
	"s": []string{"200"},
	"r": []string{"pg"},
	"d": []string{"mp"},
}

// URL returns the gravatar URL for an email address. The email is
// trimmed and lowercased before hashing, per the gravatar protocol.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized)) //nolint:gosec // see package doc
	return baseURL + hex.EncodeToString(sum[:]) + "?" + defaultOptions.Encode()
}
