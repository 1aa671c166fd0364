// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie configuration and Redis key prefixes.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "maktaba-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream GraphQL

const (
	// UpstreamRequestTimeout bounds a single GraphQL round-trip to Hasura.
	UpstreamRequestTimeout = 30 * time.Second

	// UpstreamRateLimitRPS caps outbound requests per second to the upstream.
	UpstreamRateLimitRPS = 50.0

	// UpstreamRateLimitBurst is the outbound burst allowance.
	UpstreamRateLimitBurst = 100
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Sessions

const (
	// SessionIssuer is the standard 'iss' claim in session tokens.
	SessionIssuer = "maktaba.app"

	// SessionCookieName is the name of the cookie carrying the signed session token.
	SessionCookieName = "maktaba_session"

	// SessionTTL is how long an authenticated session stays valid in Redis.
	SessionTTL = 7 * 24 * time.Hour

	// AuthorCreateLockTTL bounds the per-user lock taken around author
	// find-or-create. Short so a crashed holder cannot wedge logins.
	AuthorCreateLockTTL = 10 * time.Second

	// AuthorCreateLockRetryDelay is how long a contended login waits before
	// re-reading the profile the lock winner is creating.
	AuthorCreateLockRetryDelay = 300 * time.Millisecond
)

// # Uploads

const (
	// MaxUploadBytes caps a single multipart image upload.
	MaxUploadBytes = 10 << 20 // 10 MiB
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMeta    = "meta"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixSession          = "auth:session:"
	RedisPrefixAuthorCreateLock = "auth:author_create_lock:"
)
