package config

import (
	"strconv"
	"time"
)

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the root of the CRM backend (e.g. "https://crm.example.com/api")
func (API) GetAPIBaseURL() string {
	return GetEnv("CRM_API_URL", "http://localhost:8080")
}

// GetAuthEndpoint is resolved against the base URL unless it is absolute.
func (API) GetAuthEndpoint() string {
	return GetEnv("CRM_AUTH_ENDPOINT", "/v1/auth/token")
}

func (API) GetRequestTimeout() time.Duration {
	return GetEnvDuration("CRM_REQUEST_TIMEOUT", 30*time.Second)
}

func (API) GetMaxRetries() int {
	return GetEnvInt("CRM_MAX_RETRIES", 3)
}

// GetRequestsPerSecond returns 0 for unlimited.
func (API) GetRequestsPerSecond() float64 {
	rps, err := strconv.ParseFloat(GetEnv("CRM_RATE_LIMIT_RPS", "0"), 64)
	if err != nil || rps < 0 {
		return 0
	}
	return rps
}
