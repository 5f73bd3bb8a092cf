package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	// Debug switches to zap's development configuration.
	Level string `mapstructure:"level" default:"info"`
	// Format selects the output encoding: json or console.
	Format string `mapstructure:"format" default:"json"`
}
