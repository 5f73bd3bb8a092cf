package vision

// Config holds configuration for the vision endpoint.
// The endpoint must be OpenAI-compatible (chat completions with image input).
type Config struct {
	// BaseURL is the API root of the vision provider.
	BaseURL string `mapstructure:"base_url" default:"https://api.studio.nebius.ai/v1"`
	// Model is the vision model identifier.
	Model string `mapstructure:"model" default:"Qwen/Qwen2-VL-72B-Instruct"`
	// ApiKey authenticates against the provider. Required for real calls.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds a single classification call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"60"`
}
