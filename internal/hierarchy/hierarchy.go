// Package hierarchy defines the labour-department officer roles and their
// reporting structure. These are pure lookup tables with ZERO dependencies on
// HTTP, storage, or any other infrastructure — the rest of the system treats
// them as the single source of truth for who reports to whom.
package hierarchy

// Role is one of the fixed officer designations.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleALO          Role = "ALO"          // Assistant Labour Officer
	RoleACL          Role = "ACL"          // Assistant Commissioner of Labour
	RoleDCL          Role = "DCL"          // Deputy Commissioner of Labour
	RoleJCL          Role = "JCL"          // Joint Commissioner of Labour
	RoleCommissioner Role = "COMMISSIONER" // Commissioner of Labour
)

// Meta holds display metadata for a role.
type Meta struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

var metaByRole = map[Role]Meta{
	RoleAdmin:        {Label: "System Administrator", Description: "Manage users and hierarchy"},
	RoleALO:          {Label: "Assistant Labour Officer", Description: "Field monitoring and entry"},
	RoleACL:          {Label: "Assistant Commissioner", Description: "Circle oversight"},
	RoleDCL:          {Label: "Deputy Commissioner", Description: "Division analytics"},
	RoleJCL:          {Label: "Joint Commissioner", Description: "Regional strategy"},
	RoleCommissioner: {Label: "Commissioner of Labour", Description: "State-wide integrated view"},
}

// parentOf maps each role to its immediate parent in the reporting chain.
// COMMISSIONER and ADMIN are top-level and have no parent. The relation is a
// forest: every non-root role has exactly one parent and there are no cycles.
var parentOf = map[Role]Role{
	RoleALO: RoleACL,
	RoleACL: RoleDCL,
	RoleDCL: RoleJCL,
	RoleJCL: RoleCommissioner,
}

// Subordinate describes the role that reports to a supervisory role and the
// fixed number of such officers shown on that supervisor's dashboard roster.
type Subordinate struct {
	Role  Role
	Count int
}

var subordinateOf = map[Role]Subordinate{
	RoleACL:          {Role: RoleALO, Count: 5},
	RoleDCL:          {Role: RoleACL, Count: 3},
	RoleJCL:          {Role: RoleDCL, Count: 4},
	RoleCommissioner: {Role: RoleJCL, Count: 6},
}

// Level maps role names to permission levels for minimum-role checks.
var Level = map[Role]int{
	RoleALO:          1,
	RoleACL:          2,
	RoleDCL:          3,
	RoleJCL:          4,
	RoleCommissioner: 5,
	RoleAdmin:        6,
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := metaByRole[r]
	return ok
}

// MetaOf returns the display metadata for a role. Unknown roles get an
// empty Meta.
func MetaOf(r Role) Meta {
	return metaByRole[r]
}

// ParentOf returns the immediate parent role in the reporting chain.
// ok is false for top-level roles (COMMISSIONER, ADMIN) and unknown roles.
func ParentOf(r Role) (Role, bool) {
	p, ok := parentOf[r]
	return p, ok
}

// SubordinateOf returns the subordinate role and roster size for a
// supervisory role. ok is false for ALO, ADMIN, and unknown roles.
func SubordinateOf(r Role) (Subordinate, bool) {
	s, ok := subordinateOf[r]
	return s, ok
}

// IsSupervisory reports whether the role has a subordinate roster on its
// dashboard.
func IsSupervisory(r Role) bool {
	_, ok := subordinateOf[r]
	return ok
}

// IsSenior reports whether the role sees division-level aggregate figures.
// Senior dashboards are scaled up relative to field-level ones.
func IsSenior(r Role) bool {
	switch r {
	case RoleDCL, RoleJCL, RoleCommissioner, RoleAdmin:
		return true
	}
	return false
}

// All returns every known role in seniority order, ADMIN last.
func All() []Role {
	return []Role{RoleALO, RoleACL, RoleDCL, RoleJCL, RoleCommissioner, RoleAdmin}
}

// Assignable returns the roles an administrator may provision accounts for.
// ADMIN itself is excluded: there is exactly one built-in admin login.
func Assignable() []Role {
	return []Role{RoleALO, RoleACL, RoleDCL, RoleJCL, RoleCommissioner}
}
