package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/farmfit/farmfit/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations
	_ = v.RegisterValidation("severity", validateSeverity)
	_ = v.RegisterValidation("demand", validateDemand)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map.
// This prevents leaking internal struct names and provides cleaner messages.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "email":
			errs[field] = "Invalid email format"
		case "severity":
			errs[field] = "Invalid severity"
		case "demand":
			errs[field] = "Invalid demand level"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt":
			errs[field] = fmt.Sprintf("Must be greater than %s", e.Param())
		case "oneof":
			errs[field] = "Invalid value"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidSeverities defines the accepted notification severities
var ValidSeverities = map[string]bool{
	domain.SeverityInfo:     true,
	domain.SeverityWarning:  true,
	domain.SeverityCritical: true,
}

// ValidDemandLevels defines the accepted market demand levels
var ValidDemandLevels = map[string]bool{
	domain.DemandLow:    true,
	domain.DemandMedium: true,
	domain.DemandHigh:   true,
}

func validateSeverity(fl validator.FieldLevel) bool {
	severity := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if severity == "" {
		return true
	}
	return ValidSeverities[strings.ToLower(severity)]
}

func validateDemand(fl validator.FieldLevel) bool {
	demand := fl.Field().String()
	if demand == "" {
		return true
	}
	return ValidDemandLevels[strings.ToLower(demand)]
}
