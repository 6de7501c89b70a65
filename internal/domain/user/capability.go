package user

type Capability string

const (
	// Payroll
	CapabilityPayrollGenerate Capability = "payroll.generate"
	CapabilityPayrollVerify   Capability = "payroll.verify"
	CapabilityPayrollViewAll  Capability = "payroll.view_all"

	// Overtime
	CapabilityOvertimeSubmit  Capability = "overtime.submit"
	CapabilityOvertimeDecide  Capability = "overtime.decide"
	CapabilityOvertimeViewAll Capability = "overtime.view_all"

	// Leave
	CapabilityLeaveViewOwn Capability = "leave.view_own"
	CapabilityLeaveManage  Capability = "leave.manage"

	// Attendance
	CapabilityAttendanceRecord Capability = "attendance.record"

	// Deduction rule catalog
	CapabilityRulesManage Capability = "rules.manage"

	// Pay periods
	CapabilityPeriodsManage Capability = "periods.manage"
)

type capabilitySet map[Capability]struct{}

func newCapabilitySet(caps ...Capability) capabilitySet {
	set := make(capabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// roleCapabilities is the closed role-to-capability table. Checks are a
// single set-membership test; roles and capabilities are never compared by
// scanning string literals.
var roleCapabilities = map[Role]capabilitySet{
	RoleAdmin: newCapabilitySet(
		CapabilityPayrollGenerate,
		CapabilityPayrollVerify,
		CapabilityPayrollViewAll,
		CapabilityOvertimeSubmit,
		CapabilityOvertimeDecide,
		CapabilityOvertimeViewAll,
		CapabilityLeaveViewOwn,
		CapabilityLeaveManage,
		CapabilityAttendanceRecord,
		CapabilityRulesManage,
		CapabilityPeriodsManage,
	),
	RoleSupervisor: newCapabilitySet(
		CapabilityPayrollViewAll,
		CapabilityOvertimeSubmit,
		CapabilityOvertimeDecide,
		CapabilityOvertimeViewAll,
		CapabilityLeaveViewOwn,
		CapabilityAttendanceRecord,
	),
	RoleEmployee: newCapabilitySet(
		CapabilityOvertimeSubmit,
		CapabilityLeaveViewOwn,
		CapabilityAttendanceRecord,
	),
}

// Can reports whether a role holds a capability.
func Can(role Role, capability Capability) bool {
	set, exists := roleCapabilities[role]
	if !exists {
		return false
	}
	_, ok := set[capability]
	return ok
}
