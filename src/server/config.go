package server

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port string `envconfig:"SERVER_PORT" default:"8080"`
	// ChatMaxDurationSeconds bounds one chat request end to end, including
	// the model stream. There is no cancellation path beyond this bound.
	ChatMaxDurationSeconds int `envconfig:"CHAT_MAX_DURATION" default:"30"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
