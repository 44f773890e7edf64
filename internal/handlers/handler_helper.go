package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON wraps every response in the {"status": ..., "data": ...}
// envelope.
func writeJSON(w http.ResponseWriter, code int, status string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": status,
		"data":   data,
	})
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, "error", map[string]string{"error": err.Error()})
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}
