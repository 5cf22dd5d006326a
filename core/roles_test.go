package core

import "testing"

func TestLandingPath(t *testing.T) {
	tests := []struct {
		role string
		want string
	}{
		{RoleStudent, "/student"},
		{RoleTeacher, "/teacher"},
		{RolePrincipal, "/principal"},
		{"admin", "/"},
		{"", "/"},
		{"STUDENT", "/"}, // roles are case sensitive, as reported by the backend
	}
	for _, tt := range tests {
		if got := LandingPath(tt.role); got != tt.want {
			t.Errorf("LandingPath(%q) = %q, want %q", tt.role, got, tt.want)
		}
	}
}

func TestKnownRole(t *testing.T) {
	for _, role := range AllRoles {
		if !KnownRole(role) {
			t.Errorf("KnownRole(%q) = false", role)
		}
	}
	if KnownRole("admin") {
		t.Error(`KnownRole("admin") = true`)
	}
}
