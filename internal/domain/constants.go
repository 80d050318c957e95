package domain

const (
	// DefaultStayHours is the assumed span of a reservation without an
	// explicit end time, used only for conflict comparisons.
	DefaultStayHours = 24
)

// Business validation constants
const (
	MaxMemoLength = 500
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04" // YYYY-MM-DD HH:MM
)
