package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{StatusScheduled, StatusCheckedIn, true},
		{StatusScheduled, StatusCheckedOut, true},
		{StatusScheduled, StatusCancelled, true},

		{StatusCheckedIn, StatusCheckedOut, true},
		{StatusCheckedIn, StatusCancelled, true},
		{StatusCheckedIn, StatusScheduled, false},

		{StatusCheckedOut, StatusScheduled, false},
		{StatusCheckedOut, StatusCheckedIn, false},
		{StatusCheckedOut, StatusCancelled, false},

		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusCheckedIn, false},
		{StatusCancelled, StatusCheckedOut, false},

		// same status is always a legal no-op
		{StatusScheduled, StatusScheduled, true},
		{StatusCheckedIn, StatusCheckedIn, true},
		{StatusCheckedOut, StatusCheckedOut, true},
		{StatusCancelled, StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReservationCanTransitionTo(t *testing.T) {
	res := &Reservation{Status: StatusCheckedIn}

	assert.True(t, res.CanTransitionTo(StatusCheckedOut))
	assert.False(t, res.CanTransitionTo(StatusScheduled))
}

func TestReservationStatePredicates(t *testing.T) {
	tests := []struct {
		status   ReservationStatus
		active   bool
		terminal bool
	}{
		{StatusScheduled, true, false},
		{StatusCheckedIn, true, false},
		{StatusCheckedOut, true, true},
		{StatusCancelled, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			res := &Reservation{Status: tt.status}
			assert.Equal(t, tt.active, res.IsActive())
			assert.Equal(t, tt.terminal, res.IsTerminal())
		})
	}
}
