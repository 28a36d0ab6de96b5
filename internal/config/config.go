package config

import "time"

type Config interface {
	EnvConfig
	APIConfig
	SecurityConfig
	StorageConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
	GetEnv() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetAuthEndpoint() string
	GetRequestTimeout() time.Duration
	GetMaxRetries() int
	GetRequestsPerSecond() float64
}

type mainConfig struct {
	EnvVars
	API
	Security
	Storage
}

func New() Config {
	return mainConfig{}
}
