package utils

import (
	"time"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("password", ValidatePasswordRule)
	Validate.RegisterValidation("calendardate", ValidateCalendarDateRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("password", ValidatePasswordRule)
		v.RegisterValidation("calendardate", ValidateCalendarDateRule)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

func ValidatePassword(password string) bool {
	// Password must:
	// - Be at least 6 characters long
	// - Contain at least one number
	// - Contain at least one special character

	hasNumber := false
	hasSpecial := false

	if len(password) < 6 {
		return false
	}

	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasNumber && hasSpecial
}

// ValidateCalendarDateRule accepts an empty value or a YYYY-MM-DD date.
func ValidateCalendarDateRule(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
