package domain

import "time"

// MemberStatus is a member's lifecycle status. The persisted value is a
// cache; the source of truth is always ResolveStatus over the membership
// expiry date and today.
type MemberStatus string

const (
	StatusActive       MemberStatus = "active"
	StatusSoonToExpire MemberStatus = "soon-to-expire"
	StatusExpired      MemberStatus = "expired"
	StatusArchived     MemberStatus = "archived"
)

const (
	// SoonToExpireWindowDays is the inclusive warning window before expiry.
	SoonToExpireWindowDays = 7
	// ArchiveAfterDays is how many days past expiry a member auto-archives.
	ArchiveAfterDays = 30
)

// ResolveStatus maps an expiry date and today to a lifecycle status.
// Pure and total: exactly 7 days out is soon-to-expire, exactly 30 days
// past is archived.
func ResolveStatus(expiry, today time.Time) MemberStatus {
	days := daysBetween(today, expiry)
	switch {
	case days <= -ArchiveAfterDays:
		return StatusArchived
	case days < 0:
		return StatusExpired
	case days <= SoonToExpireWindowDays:
		return StatusSoonToExpire
	default:
		return StatusActive
	}
}

func daysBetween(from, to time.Time) int {
	a := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
