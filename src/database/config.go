package database

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the trade-log store connection parameters. The store is
// read-only for this service; the ingestion agents own the schema.
type Config struct {
	Driver       string `envconfig:"DB_DRIVER" default:"postgres"` // "postgres" or "sqlite" for local runs
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	User         string `envconfig:"DB_USER" default:"postgres"`
	Password     string `envconfig:"DB_PASSWORD" default:""`
	Port         int    `envconfig:"DB_PORT" default:"5432"`
	Name         string `envconfig:"DB_NAME" default:"posttrade"`
	SSLMode      string `envconfig:"DB_SSLMODE" default:"disable"`
	GormLogLevel int    `envconfig:"GORM_LOG_LEVEL" default:"2"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}

// DSN renders the postgres connection string from the discrete settings.
// For sqlite the database name is the file path.
func (c Config) DSN() string {
	if c.Driver == "sqlite" {
		return c.Name
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}
