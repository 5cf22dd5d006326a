// Package nav composes the role-scoped dashboard navigation. Menus are
// fixed per role and safe to recompute on every render.
package nav

import "github.com/Shivankitsingh3/School-Management-System/core"

type MenuEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

var menus = map[string][]MenuEntry{
	core.RoleTeacher: {
		{Label: "Dashboard", Path: "/teacher"},
		{Label: "My Profile", Path: "/teacher/me"},
		{Label: "My Assignments", Path: "/teacher/assignments"},
		{Label: "Create Assignment", Path: "/teacher/assignments/create"},
		{Label: "Mark Attendance", Path: "/teacher/attendance"},
		{Label: "Reports", Path: "/teacher/reports"},
		{Label: "Submissions", Path: "/teacher/submissions"},
		{Label: "Students List", Path: "/teacher/studentlist"},
	},
	core.RolePrincipal: {
		{Label: "Dashboard", Path: "/principal"},
		{Label: "My Profile", Path: "/principal/me"},
		{Label: "Assign Faculty", Path: "/principal/assign"},
		{Label: "Pending Teachers", Path: "/principal/pending-teachers"},
		{Label: "Attendance Reports", Path: "/principal/attendance"},
		{Label: "Teachers List", Path: "/principal/teacherlist"},
		{Label: "Students List", Path: "/principal/studentlist"},
	},
	core.RoleStudent: {
		{Label: "Dashboard", Path: "/student"},
		{Label: "My Profile", Path: "/student/me"},
		{Label: "My Submissions", Path: "/student/submissions"},
		{Label: "Attendance Summary", Path: "/student/attendance"},
		{Label: "Classroom Students", Path: "/student/studentlist"},
	},
}

// Compose returns the ordered menu for a role. An unrecognized or
// absent role yields an empty menu. The returned slice is a copy.
func Compose(role string) []MenuEntry {
	src, ok := menus[role]
	if !ok {
		return []MenuEntry{}
	}
	out := make([]MenuEntry, len(src))
	copy(out, src)
	return out
}
