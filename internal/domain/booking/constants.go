package booking

// Order states
const (
	StateBooked    = "BOOKED"
	StateReleased  = "RELEASED"
	StateClosed    = "CLOSED"
	StateCancelled = "CANCELLED"
)

// Order history actions
const (
	ActionUserBooked      = "USER_BOOKED"
	ActionUserCancelled   = "USER_CANCELLED"
	ActionUserReleased    = "USER_RELEASED"
	ActionUserClaimed     = "USER_CLAIMED"
	ActionUserModeChanged = "USER_MODE_CHANGED"
	ActionSystemCreated   = "SYSTEM_CREATED"
	ActionSystemUpdated   = "SYSTEM_UPDATED"
	ActionSystemReleased  = "SYSTEM_RELEASED"
	ActionSystemDeleted   = "SYSTEM_DELETED"
	ActionSystemClosed    = "SYSTEM_CLOSED"
	ActionAdminCancelled  = "ADMIN_CANCELLED"
)

// SystemUserID books on behalf of households during scaffolding and maintenance.
const SystemUserID = "system"
