package domain

import "fmt"

// PaymentType is how a member pays for gym access.
type PaymentType string

const (
	PaymentTypeMonthly    PaymentType = "monthly"
	PaymentTypePerSession PaymentType = "per_session"
)

// MembershipDuration is the lifetime membership window option chosen at
// registration.
type MembershipDuration string

const (
	DurationLifetime MembershipDuration = "lifetime"
	Duration1Year    MembershipDuration = "1_year"
	Duration2Years   MembershipDuration = "2_years"
	Duration3Years   MembershipDuration = "3_years"
	Duration4Years   MembershipDuration = "4_years"
	Duration5Years   MembershipDuration = "5_years"
)

// Months returns the duration in months. Lifetime memberships use a
// 100-year window so status resolution stays a pure date comparison.
func (d MembershipDuration) Months() (int, bool) {
	switch d {
	case DurationLifetime:
		return 1200, true
	case Duration1Year:
		return 12, true
	case Duration2Years:
		return 24, true
	case Duration3Years:
		return 36, true
	case Duration4Years:
		return 48, true
	case Duration5Years:
		return 60, true
	}
	return 0, false
}

// SessionType is the duration bracket for a single gym session.
type SessionType string

const (
	Session1Hour    SessionType = "1_hour"
	Session2Hours   SessionType = "2_hours"
	SessionWholeDay SessionType = "whole_day"
)

// ValidSessionType reports whether s is a known session type.
func ValidSessionType(s SessionType) bool {
	switch s {
	case Session1Hour, Session2Hours, SessionWholeDay:
		return true
	}
	return false
}

// PaymentMethod is how a payment was collected.
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "Cash"
	MethodGCash PaymentMethod = "GCash"
	MethodCard  PaymentMethod = "Card"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodGCash, MethodCard:
		return true
	}
	return false
}

// PaymentCategory classifies ledger entries for income reporting.
type PaymentCategory string

const (
	CategoryMembershipFee       PaymentCategory = "Membership Fee"
	CategoryMonthlySubscription PaymentCategory = "Monthly Subscription"
	CategoryMemberSessionFee    PaymentCategory = "Member Session Fee"
	CategoryWalkInSessionFee    PaymentCategory = "Walk-In Session Fee"
	CategoryOther               PaymentCategory = "Other"
)

// PaymentCategories lists every ledger category, in reporting order.
var PaymentCategories = []PaymentCategory{
	CategoryMembershipFee,
	CategoryMonthlySubscription,
	CategoryMemberSessionFee,
	CategoryWalkInSessionFee,
	CategoryOther,
}

// WalkInID is the sentinel member ID on walk-in attendance rows.
const WalkInID = "WALK-IN"

// WalkInLedgerID builds the ledger member marker for a walk-in, embedding
// the entered name so the append-only ledger stays self-describing.
func WalkInLedgerID(name string) string {
	return fmt.Sprintf("%s:%s", WalkInID, name)
}

// SubscriptionBonus is a promo bonus applied at subscription start or
// renewal. A nil bonus means no active promo qualified.
type SubscriptionBonus struct {
	PaidMonths int    `json:"paid_months"`
	FreeMonths int    `json:"free_months"`
	PromoName  string `json:"promo_name"`
}

// ReferralRedemptionSize is how many successful invites one free
// subscription month costs.
const ReferralRedemptionSize = 4
