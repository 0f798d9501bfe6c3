// Package internal holds process-level wiring: configuration and the
// file-backed logger. Nothing here knows about the chat protocol.
package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	// ServerURL is the websocket endpoint of the room coordination
	// service.
	ServerURL string `env:"PINCHAT_SERVER_URL,default=ws://localhost:4000/socket" validate:"required,url"`

	// DefaultCapacity prefills the create-room input.
	DefaultCapacity string `env:"PINCHAT_DEFAULT_CAPACITY,default=5" validate:"required"`

	DialTimeout time.Duration `env:"PINCHAT_DIAL_TIMEOUT,default=5s"`

	// The TUI owns stdout, so logs go to a file.
	LogLevel string `env:"PINCHAT_LOG_LEVEL,default=info"`
	LogFile  string `env:"PINCHAT_LOG_FILE,default=pinchat.log"`
}

// LoadConfig reads an optional .env file, then the environment, and
// validates the result.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
