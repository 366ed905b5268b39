package user

type Permission string

const (
	// Master data
	PermissionCompanyManage Permission = "company.manage"
	PermissionBranchManage  Permission = "branch.manage"
	PermissionUserView      Permission = "user.view"
	PermissionUserManage    Permission = "user.manage"

	// Scheduling
	PermissionShiftView   Permission = "shift.view"
	PermissionShiftManage Permission = "shift.manage"

	// Leave
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance
	PermissionAttendanceRecord  Permission = "attendance.record"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Reporting
	PermissionReportsView   Permission = "reports.view"
	PermissionDashboardView Permission = "dashboard.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionCompanyManage,
		PermissionBranchManage,
		PermissionUserView,
		PermissionUserManage,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceRecord,
		PermissionAttendanceViewAll,
		PermissionReportsView,
		PermissionDashboardView,
	},
	RoleManager: {
		PermissionUserView,
		PermissionShiftView,
		PermissionShiftManage,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceRecord,
		PermissionAttendanceViewAll,
		PermissionReportsView,
		PermissionDashboardView,
	},
	RoleEmployee: {
		PermissionShiftView,
		PermissionLeaveCreate,
		PermissionAttendanceRecord,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
