package domain

import "time"

// HotelRoom is a tenant-owned room that hotel reservations are assigned to.
// Read-mostly from this service's perspective; room management lives elsewhere.
type HotelRoom struct {
	ID        int64
	TenantID  int64
	Name      string
	Size      string // capacity/size descriptor, e.g. "S", "M", "L"
	Enabled   bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}
