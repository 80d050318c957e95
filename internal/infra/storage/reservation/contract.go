package reservation

import (
	"github.com/pawdesk/PD-ReservationService/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interface for database access, so the
// repository works against both *sql.DB and the metrics-wrapped pool.
type DBExecutor = dbmetrics.DBExecutor
