package nav

import (
	"testing"

	"github.com/Shivankitsingh3/School-Management-System/core"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name      string
		role      string
		wantLen   int
		wantFirst MenuEntry
	}{
		{
			name:      "teacher",
			role:      core.RoleTeacher,
			wantLen:   8,
			wantFirst: MenuEntry{Label: "Dashboard", Path: "/teacher"},
		},
		{
			name:      "principal",
			role:      core.RolePrincipal,
			wantLen:   7,
			wantFirst: MenuEntry{Label: "Dashboard", Path: "/principal"},
		},
		{
			name:      "student",
			role:      core.RoleStudent,
			wantLen:   5,
			wantFirst: MenuEntry{Label: "Dashboard", Path: "/student"},
		},
		{name: "unknown role", role: "janitor", wantLen: 0},
		{name: "empty role", role: "", wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := Compose(tt.role)
			if menu == nil {
				t.Fatal("Compose() returned nil, want empty or populated slice")
			}
			if len(menu) != tt.wantLen {
				t.Fatalf("Compose() returned %d entries, want %d", len(menu), tt.wantLen)
			}
			if tt.wantLen > 0 && menu[0] != tt.wantFirst {
				t.Errorf("Compose()[0] = %+v, want %+v", menu[0], tt.wantFirst)
			}
		})
	}
}

func TestComposeReturnsCopy(t *testing.T) {
	menu := Compose(core.RoleStudent)
	menu[0] = MenuEntry{Label: "Hacked", Path: "/hacked"}

	if again := Compose(core.RoleStudent); again[0] != (MenuEntry{Label: "Dashboard", Path: "/student"}) {
		t.Errorf("mutating a composed menu leaked into the shared table: %+v", again[0])
	}
}

func TestMenuPathsStayInRoleArea(t *testing.T) {
	for _, role := range core.AllRoles {
		for _, entry := range Compose(role) {
			if want := core.LandingPath(role); len(entry.Path) < len(want) || entry.Path[:len(want)] != want {
				t.Errorf("role %s: entry %q points at %q, outside %q", role, entry.Label, entry.Path, want)
			}
		}
	}
}
