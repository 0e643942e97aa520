package rbac

import (
	"go-elra/internal/directory"
)

// Role names on the authority ladder. Each rung inherits the rung below it.
const (
	RoleViewer     = "viewer"
	RoleStaff      = "staff"
	RoleManager    = "manager"
	RoleHOD        = "hod"
	RoleSuperAdmin = "super_admin"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type rung struct {
	level int
	role  string
}

// ladder is ordered from the lowest rung to the highest.
var ladder = []rung{
	{directory.LevelViewer, RoleViewer},
	{directory.LevelStaff, RoleStaff},
	{directory.LevelManager, RoleManager},
	{directory.LevelHOD, RoleHOD},
	{directory.LevelSuperAdmin, RoleSuperAdmin},
}

// defaultPolicies grants each permission to the lowest rung that may use it.
var defaultPolicies = [][]string{
	{RoleViewer, "leave", "read"},
	{RoleViewer, "leave", "stats"},
	{RoleViewer, "department", "read"},
	{RoleViewer, "notification", "read"},
	{RoleStaff, "leave", "create"},
	{RoleStaff, "leave", "update"},
	{RoleStaff, "leave", "delete"},
	{RoleStaff, "leave", "cancel"},
	{RoleManager, "leave", "approve"},
	{RoleManager, "leave", "pending"},
	{RoleHOD, "leave", "read_department"},
	{RoleHOD, "audit", "read"},
}

// RoleForLevel maps a numeric role level to the highest rung it reaches.
// Levels below the viewer rung map to "" and are denied everything.
func RoleForLevel(level int) string {
	role := ""
	for _, r := range ladder {
		if level >= r.level {
			role = r.role
		}
	}
	return role
}
