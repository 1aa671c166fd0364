// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements dashboard login, session management, and the
role-based dashboard gate.

It decides, at login time, which of two dashboards (admin or author) a user
lands on, blocks accounts whose role carries no dashboard access, and runs
ownership resolution for author-dashboard sessions.

# Architecture

  - Service: Orchestrates credential checks, the dashboard gate, and
    ownership resolution against the remote user directory.
  - SessionRepository: Redis-backed volatile storage for session payloads.
  - Security: bcrypt verification plus HS256-signed session cookies.

The session payload {id, email, role, dashboard, authorID} is written once at
login; nothing mutates it afterwards except logout.
*/
package auth

import "time"

// # Session Lifetime

const (
	// SessionTokenTTL matches the Redis session TTL so the cookie and the
	// stored payload expire together.
	SessionTokenTTL = 7 * 24 * time.Hour
)

// # Field Identifiers

// Global field names for validation in the authentication domain.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldBio      = "bio"
	FieldImageURL = "image_url"
)
