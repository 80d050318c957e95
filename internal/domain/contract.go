package domain

import "time"

// ContractKind distinguishes flat-rate agreements from prepaid session bundles.
type ContractKind string

const (
	ContractMonthly ContractKind = "monthly"
	ContractTicket  ContractKind = "ticket"
)

// Contract is a dog's service agreement. Only ticket contracts carry a
// session balance; the service decrements it but never creates or renews
// contracts.
type Contract struct {
	ID                int64
	DogID             int64
	Kind              ContractKind
	TotalSessions     int
	RemainingSessions int
	ExpiresOn         *time.Time // date-only validity bound, nil = no expiry
	CreatedAt         time.Time
}

// IsValidOn reports whether the contract is usable on the given date.
func (c *Contract) IsValidOn(day time.Time) bool {
	if c.ExpiresOn == nil {
		return true
	}
	y1, m1, d1 := c.ExpiresOn.Date()
	y2, m2, d2 := day.Date()
	expiry := time.Date(y1, m1, d1, 0, 0, 0, 0, time.Local)
	today := time.Date(y2, m2, d2, 0, 0, 0, 0, time.Local)
	return !expiry.Before(today)
}

// HasSessions reports whether a ticket contract still has balance to consume.
func (c *Contract) HasSessions() bool {
	return c.Kind == ContractTicket && c.RemainingSessions > 0
}
