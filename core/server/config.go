package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB is the maximum accepted request body size in MiB.
	// Photo uploads larger than this are rejected by Fiber before any handler runs.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"16"`
}

// BodyLimitBytes returns the request body limit in bytes, falling back to 16 MiB.
func (c Config) BodyLimitBytes() int {
	limit := c.BodyLimitMB
	if limit <= 0 {
		limit = 16
	}
	return limit * 1024 * 1024
}
