package user

type Role string

const (
	RoleAdmin      Role = "admin"      // Payroll administration - full access
	RoleSupervisor Role = "supervisor" // Can approve overtime and view payroll
	RoleEmployee   Role = "employee"   // Can submit requests and view own data
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}
