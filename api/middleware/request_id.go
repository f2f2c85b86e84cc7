package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rfqhub/rfqhub-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every request with a correlation id, echoed back in the
// response header and attached to the request logger. Inbound ids are only
// trusted when they parse as uuids; anything else is replaced.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := normalizeRequestID(r.Header.Get(requestIDHeader))

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func normalizeRequestID(candidate string) string {
	if candidate != "" {
		if parsed, err := uuid.Parse(candidate); err == nil {
			return parsed.String()
		}
	}
	return uuid.NewString()
}
