package api

import (
	"net/http"
	"os"
	"strings"

	"VyaparDash/internal/config"
)

// OwnerID resolves the tenant for a request. The owner travels explicitly on
// every request (query param or form field); deployments that serve a single
// business set DEFAULT_OWNER_ID instead of sending it each time.
func OwnerID(r *http.Request) string {
	if v := strings.TrimSpace(r.URL.Query().Get("owner_id")); v != "" {
		return v
	}
	if v := strings.TrimSpace(r.FormValue("owner_id")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_OWNER_ID")); v != "" {
		return v
	}
	return config.DefaultOwnerID
}
