package types

import (
	"os"
	"strings"
)

// ContextUserKey is the gin context key the auth middleware stores the
// resolved user under.
const ContextUserKey = "user"

// AllowedOrigins lists the CORS origins the API accepts. The local dev
// frontends are always allowed; CLIENT_URL and the comma-separated
// ALLOWED_ORIGINS env vars extend the list for deployed environments.
var AllowedOrigins = corsOrigins()

func corsOrigins() []string {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:8080",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}
