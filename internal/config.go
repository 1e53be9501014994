package internal

import (
	"anonymity-service/domain"
	"anonymity-service/registry"
	"fmt"
	"time"
)

type Config struct {
	Owner             string        `env:"OWNER,required=true"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true"`
	LogLevel          string        `env:"LOG_LEVEL,required=true"`
	Host              string        `env:"HOST,default=localhost"`
	Port              int           `env:"PORT,default=8080"`
	DebugPort         int           `env:"DEBUG_PORT,default=0"`
	MinContentLength  int           `env:"MIN_CONTENT_LENGTH,default=10"`
	MaxContentLength  int           `env:"MAX_CONTENT_LENGTH,default=500"`
	MaxMessages       *uint64       `env:"MAX_MESSAGES"`
	JWTSecret         string        `env:"JWT_SECRET,required=true"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=24h"`
	StatusInterval    time.Duration `env:"STATUS_INTERVAL,default=30s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s"`
}

// Policy builds the registry limits from the configuration.
func (c Config) Policy() (registry.Policy, error) {
	rules := domain.ContentRules{MinLength: c.MinContentLength, MaxLength: c.MaxContentLength}
	if err := rules.Check(); err != nil {
		return registry.Policy{}, fmt.Errorf("invalid content rules: %w", err)
	}
	return registry.Policy{Content: rules, MaxMessages: c.MaxMessages}, nil
}

// Address is the gRPC listen address.
func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
