package domain

// CanTransition implements the reservation status transition matrix.
//
//	scheduled  -> checked_in | checked_out | cancelled
//	checked_in -> checked_out | cancelled
//	any        -> same status (idempotent no-op)
//	checked_out, cancelled -> nothing else
//
// Timestamps and ledger side effects are applied by the update coordinator;
// this function only answers legality.
func CanTransition(from, to ReservationStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusScheduled:
		return to == StatusCheckedIn || to == StatusCheckedOut || to == StatusCancelled
	case StatusCheckedIn:
		return to == StatusCheckedOut || to == StatusCancelled
	default:
		// checked_out and cancelled are terminal
		return false
	}
}

// CanTransitionTo reports whether the reservation may move to the given status.
func (r *Reservation) CanTransitionTo(to ReservationStatus) bool {
	return CanTransition(r.Status, to)
}
