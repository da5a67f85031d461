package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// BillingSettings controls when billing periods are cut and in which
// time zone dinner dates and deadlines are interpreted.
type BillingSettings struct {
	CutoffDay int    `mapstructure:"cutoff_day" validate:"required,min=1,max=28"`
	Timezone  string `mapstructure:"timezone" validate:"required"`
}

// Validate checks that all fields in BillingSettings are valid
func (s *BillingSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for BillingSettings: %w", err)
	}

	if _, err := time.LoadLocation(s.Timezone); err != nil {
		return fmt.Errorf("unknown timezone %q: %w", s.Timezone, err)
	}

	return nil
}

// Location returns the configured time zone.
func (s *BillingSettings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
