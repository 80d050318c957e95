package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pawdesk/PD-ReservationService/internal/api/handlers"
)

type contextKey string

const tenantIDKey contextKey = "tenantID"

// Auth requires a numeric X-Tenant-ID header and stores the tenant in the
// request context. Every data access below the handlers is scoped by it.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Tenant-ID")
		if raw == "" {
			handlers.RespondUnauthorized(w, "missing X-Tenant-ID header")
			return
		}

		tenantID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, "invalid X-Tenant-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID extracts the authenticated tenant from the context.
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}
