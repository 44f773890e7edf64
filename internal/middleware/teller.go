package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const TellerKey ctxKey = "tellerID"

// ExtractTeller middleware: reads X-Teller-ID OR ?teller=
func ExtractTeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		teller := strings.TrimSpace(r.Header.Get("X-Teller-ID"))
		if teller == "" {
			teller = strings.TrimSpace(r.URL.Query().Get("teller"))
		}

		ctx := context.WithValue(r.Context(), TellerKey, teller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper: retrieves teller anywhere
func GetTeller(r *http.Request) string {
	teller, _ := r.Context().Value(TellerKey).(string)
	return teller
}
