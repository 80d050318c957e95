package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContractIsValidOn(t *testing.T) {
	day := time.Date(2026, 2, 10, 15, 30, 0, 0, time.Local)

	noExpiry := &Contract{Kind: ContractTicket}
	assert.True(t, noExpiry.IsValidOn(day))

	expiresToday := time.Date(2026, 2, 10, 0, 0, 0, 0, time.Local)
	sameDay := &Contract{Kind: ContractTicket, ExpiresOn: &expiresToday}
	// validity is date-only, so the time of day never matters
	assert.True(t, sameDay.IsValidOn(day))

	expiredYesterday := time.Date(2026, 2, 9, 0, 0, 0, 0, time.Local)
	expired := &Contract{Kind: ContractTicket, ExpiresOn: &expiredYesterday}
	assert.False(t, expired.IsValidOn(day))
}

func TestContractHasSessions(t *testing.T) {
	assert.True(t, (&Contract{Kind: ContractTicket, RemainingSessions: 1}).HasSessions())
	assert.False(t, (&Contract{Kind: ContractTicket, RemainingSessions: 0}).HasSessions())
	// monthly contracts never carry a balance
	assert.False(t, (&Contract{Kind: ContractMonthly, RemainingSessions: 5}).HasSessions())
}
