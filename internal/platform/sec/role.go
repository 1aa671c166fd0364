// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles
//
// A user has exactly one role. The upstream schema models roles as a
// single-valued defaultRole field; this enum is its canonical in-process
// representation.

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Hasura's elevated self-scope role; treated as admin-equivalent here
	RoleMe UserRole = "me"

	// Owns an Author record and manages their own books and chapters
	RoleAuthor UserRole = "author"

	// Default role for standard registered readers; no dashboard access
	RoleUser UserRole = "user"

	// Unauthenticated placeholder role; never allowed past login
	RoleAnonymous UserRole = "anonymous"
)

// ParseRole maps a raw role string to a [UserRole].
// Unknown values degrade to [RoleAnonymous] so they can never gain access.
func ParseRole(raw string) UserRole {
	switch UserRole(raw) {
	case RoleAdmin, RoleMe, RoleAuthor, RoleUser, RoleAnonymous:
		return UserRole(raw)
	default:
		return RoleAnonymous
	}
}

// # Dashboards

// Dashboard is the UI shell a session is routed to after login.
type Dashboard string

const (
	DashboardAdmin  Dashboard = "admin"
	DashboardAuthor Dashboard = "author"

	// DashboardNone marks roles that are denied any dashboard.
	DashboardNone Dashboard = ""
)

// DashboardFor resolves which dashboard a role lands on.
//
// # Decision table
//
//   - admin, me  → admin dashboard
//   - author     → author dashboard
//   - user, anonymous (and anything unknown) → denied
//
// Admin-grade roles dominate: an account whose role is admin is routed to
// the admin dashboard even if it also owns an Author record.
func DashboardFor(role UserRole) Dashboard {
	switch role {
	case RoleAdmin, RoleMe:
		return DashboardAdmin
	case RoleAuthor:
		return DashboardAuthor
	default:
		return DashboardNone
	}
}

// CanManageLibrary reports whether the role may use admin-only CRUD routes.
func (r UserRole) CanManageLibrary() bool {
	return r == RoleAdmin || r == RoleMe
}
