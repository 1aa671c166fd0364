// Copyright (c) 2026 Maktaba. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/maktaba/internal/platform/sec"
)

/*
TestDashboardFor covers the full role-to-dashboard decision table.

Admin-equivalent roles land on the admin console, authors on their own
dashboard, and everything else is denied.
*/
func TestDashboardFor(t *testing.T) {
	tests := []struct {
		name      string
		role      sec.UserRole
		dashboard sec.Dashboard
	}{
		{"admin_gets_admin", sec.RoleAdmin, sec.DashboardAdmin},
		{"me_gets_admin", sec.RoleMe, sec.DashboardAdmin},
		{"author_gets_author", sec.RoleAuthor, sec.DashboardAuthor},
		{"user_denied", sec.RoleUser, sec.DashboardNone},
		{"anonymous_denied", sec.RoleAnonymous, sec.DashboardNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dashboard, sec.DashboardFor(tt.role))
		})
	}
}

/*
TestParseRole verifies that unknown role strings collapse to anonymous
rather than silently granting anything.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		role sec.UserRole
	}{
		{"admin", "admin", sec.RoleAdmin},
		{"me", "me", sec.RoleMe},
		{"author", "author", sec.RoleAuthor},
		{"user", "user", sec.RoleUser},
		{"unknown_collapses", "superuser", sec.RoleAnonymous},
		{"empty_collapses", "", sec.RoleAnonymous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.role, sec.ParseRole(tt.raw))
		})
	}
}

/*
TestCanManageLibrary verifies the admin-console capability check.
*/
func TestCanManageLibrary(t *testing.T) {
	assert.True(t, sec.RoleAdmin.CanManageLibrary())
	assert.True(t, sec.RoleMe.CanManageLibrary())
	assert.False(t, sec.RoleAuthor.CanManageLibrary())
	assert.False(t, sec.RoleUser.CanManageLibrary())
	assert.False(t, sec.RoleAnonymous.CanManageLibrary())
}
