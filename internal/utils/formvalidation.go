package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/uyeplus/app-campaign/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// CoerceFormPayload normalizes a raw submitted payload: boolean-flag fields
// arrive as "on"/"true"/bool and become real booleans, framework-reserved
// keys ("$"-prefixed) are dropped, and everything else passes through.
func CoerceFormPayload(raw map[string]any) map[string]any {
	out := make(map[string]any, len(raw))
	for key, value := range raw {
		if strings.HasPrefix(key, "$") {
			continue
		}
		switch v := value.(type) {
		case bool:
			out[key] = v
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "on", "true":
				out[key] = true
			default:
				out[key] = v
			}
		default:
			out[key] = value
		}
	}
	return out
}

// ValidateFormPayload validates a coerced payload against a form schema.
// Every required field must be present and non-empty; typed fields must
// satisfy their length bounds, pattern, option membership or phone rule.
func ValidateFormPayload(payload map[string]any, schema []models.FormField) *ValidationResult {
	result := NewValidationResult()

	for _, field := range schema {
		value, present := payload[field.ID]
		text := stringValue(value)

		if field.Required && (!present || strings.TrimSpace(text) == "") {
			// A required boolean flag must be affirmatively set
			if b, ok := value.(bool); !ok || !b {
				result.AddError(field.ID, fmt.Sprintf("%s is required", field.Label))
				continue
			}
		}
		if !present || strings.TrimSpace(text) == "" {
			continue
		}

		if field.Type == models.FieldTypeSelect && len(field.Options) > 0 {
			if !containsOption(field.Options, text) {
				result.AddError(field.ID, fmt.Sprintf("%s has an unknown option", field.Label))
				continue
			}
		}

		if field.Rules == nil {
			continue
		}
		rules := field.Rules

		if rules.MinLength > 0 && len([]rune(text)) < rules.MinLength {
			result.AddError(field.ID, fmt.Sprintf("%s is too short", field.Label))
		}
		if rules.MaxLength > 0 && len([]rune(text)) > rules.MaxLength {
			result.AddError(field.ID, fmt.Sprintf("%s is too long", field.Label))
		}
		if rules.Pattern != "" {
			re, err := regexp.Compile(rules.Pattern)
			if err != nil {
				result.AddError(field.ID, fmt.Sprintf("%s has an invalid validation pattern", field.Label))
			} else if !re.MatchString(text) {
				result.AddError(field.ID, fmt.Sprintf("%s has an invalid format", field.Label))
			}
		}
		if rules.Phone {
			if err := validatePhoneValue(text, rules.PhoneRegion); err != nil {
				result.AddError(field.ID, fmt.Sprintf("%s is not a valid phone number", field.Label))
			}
		}
	}

	return result
}

// validatePhoneValue parses and validates a phone number with libphonenumber
func validatePhoneValue(value, region string) error {
	if region == "" {
		region = "TR"
	}
	num, err := phonenumbers.Parse(strings.TrimSpace(value), region)
	if err != nil {
		return fmt.Errorf("failed to parse phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("invalid phone number: %s", value)
	}
	return nil
}

func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func containsOption(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
