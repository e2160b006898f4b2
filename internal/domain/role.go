package domain

import "fmt"

// Role is the authorization role derived from an employee's grade.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleLeader Role = "LEADER"
	RoleUser   Role = "USER"
)

// DeriveRole maps a grade to its role. Grade is a closed enum enforced at the
// directory boundary, so an unmatched value is a programming error and panics
// rather than returning a recoverable error.
func DeriveRole(grade Grade) Role {
	switch grade {
	case GradeTopAdministrator:
		return RoleAdmin
	case GradeLeader:
		return RoleLeader
	case GradeGeneralStaff:
		return RoleUser
	default:
		panic(fmt.Sprintf("domain: unknown grade %q", grade))
	}
}
