package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MessagingSettings configures the AMQP publisher for domain events.
// When Enabled is false events are dropped.
type MessagingSettings struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url" validate:"required_if=Enabled true"`
	Exchange string `mapstructure:"exchange" validate:"required_if=Enabled true"`
}

// Validate checks that all fields in MessagingSettings are valid
func (s *MessagingSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MessagingSettings: %w", err)
	}

	return nil
}
