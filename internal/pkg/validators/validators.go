package validators

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// TimeOfDayLayout is the layout accepted by the "timeofday" tag.
const TimeOfDayLayout = "15:04"

var (
	instance *validator.Validate
	once     sync.Once
)

// New returns the shared validator with the custom tags of this module registered.
func New() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
		if err := instance.RegisterValidation("timeofday", TimeOfDayValidation); err != nil {
			panic(fmt.Sprintf("failed to register timeofday validator: %v", err))
		}
	})
	return instance
}

// TimeOfDayValidation accepts strings of the form HH:MM on a 24 hour clock.
func TimeOfDayValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(TimeOfDayLayout, fl.Field().String())
	return err == nil
}

// ValidateStruct validates s and flattens validation errors into a single
// error listing the failing fields and tags.
func ValidateStruct(s interface{}) error {
	err := New().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, fieldErr := range validationErrors {
			messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
		}
		return fmt.Errorf("validation failed: %v", messages)
	}
	return fmt.Errorf("validation error: %w", err)
}
