package services

import (
	"time"

	"github.com/yukikurage/timesheet-api/internal/constants"
)

// CurfewPolicy decides whether task declarations are currently blocked.
// The window is [23:00, 06:00) in the configured location.
type CurfewPolicy struct {
	now func() time.Time
	loc *time.Location
}

// NewCurfewPolicy creates a CurfewPolicy. A nil clock uses time.Now and a nil
// location uses time.Local.
func NewCurfewPolicy(now func() time.Time, loc *time.Location) *CurfewPolicy {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &CurfewPolicy{now: now, loc: loc}
}

// IsRestricted reports whether the current local hour falls in the curfew window.
func (p *CurfewPolicy) IsRestricted() bool {
	return IsCurfewHour(p.now().In(p.loc).Hour())
}

// Now returns the current instant in the policy's location.
func (p *CurfewPolicy) Now() time.Time {
	return p.now().In(p.loc)
}

// Location returns the location the policy evaluates hours in.
func (p *CurfewPolicy) Location() *time.Location {
	return p.loc
}

// IsCurfewHour reports whether hour lies in the restricted window.
func IsCurfewHour(hour int) bool {
	return hour >= constants.CurfewStartHour || hour < constants.CurfewEndHour
}
