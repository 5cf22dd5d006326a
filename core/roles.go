package core

// Roles as the backend reports them on account/me/.
const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RolePrincipal = "principal"
)

var AllRoles = []string{RoleStudent, RoleTeacher, RolePrincipal}

// landingPaths is the single role->path fallback table; both the route
// guards and the session manager resolve redirects through it.
var landingPaths = map[string]string{
	RoleStudent:   "/student",
	RoleTeacher:   "/teacher",
	RolePrincipal: "/principal",
}

// LandingPath returns the dashboard path for a role, or "/" for an
// unrecognized one.
func LandingPath(role string) string {
	if path, ok := landingPaths[role]; ok {
		return path
	}
	return "/"
}

func KnownRole(role string) bool {
	_, ok := landingPaths[role]
	return ok
}
