package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"

	SessionCookieName = "timesheet_session"
)

// Account rules
const (
	MinPasswordLength = 6
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// Pagination defaults
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Declaration curfew, local hours. Restricted when hour >= CurfewStartHour or hour < CurfewEndHour.
const (
	CurfewStartHour = 23
	CurfewEndHour   = 6
)

// NormalizedTaskHour is the local hour every task date is stored at so that
// timezone conversions never move it to a neighbouring day.
const NormalizedTaskHour = 12
