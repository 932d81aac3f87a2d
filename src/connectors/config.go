package connectors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the language-model service settings.
type Config struct {
	APIKey         string  `envconfig:"PPLX_API_KEY" default:""`
	BaseURL        string  `envconfig:"PPLX_BASE_URL" default:"https://api.perplexity.ai"`
	Model          string  `envconfig:"PPLX_MODEL" default:"llama-3.1-sonar-large-128k-online"`
	Temperature    float64 `envconfig:"PPLX_TEMPERATURE" default:"0.7"` // creative branches; relays always use 0
	TimeoutSeconds int     `envconfig:"PPLX_TIMEOUT_SECONDS" default:"60"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
