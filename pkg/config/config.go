package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Port string `envconfig:"port" default:"8080"`

	// DatabaseDSN must include parseTime=true so DATETIME columns scan
	// into time.Time.
	DatabaseDSN string        `envconfig:"database_dsn" required:"true"`
	JWTSecret   string        `envconfig:"jwt_secret" required:"true"`
	TokenTTL    time.Duration `envconfig:"token_ttl" default:"24h"`
	UploadDir   string        `envconfig:"upload_dir" default:"public/uploads"`
}

func Parse(prefix string) (*Config, error) {
	c := new(Config)
	if err := envconfig.Process(prefix, c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	return c, nil
}
