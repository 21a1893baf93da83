package models

// Field types supported by dynamic form schemas
const (
	FieldTypeInput    = "input"
	FieldTypeSelect   = "select"
	FieldTypeTextarea = "textarea"
)

// FormField describes one field of a campaign's dynamic application form
type FormField struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Type     string           `json:"type"`
	Required bool             `json:"required"`
	Options  []string         `json:"options,omitempty"`
	Rules    *ValidationRules `json:"validation_rules,omitempty"`
}

// ValidationRules holds the typed constraints a field value must satisfy
type ValidationRules struct {
	MinLength int    `json:"min_length,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	// Phone marks the field as a phone number validated with libphonenumber.
	Phone bool `json:"phone,omitempty"`
	// PhoneRegion is the default region used when the value has no country
	// prefix. Empty means TR.
	PhoneRegion string `json:"phone_region,omitempty"`
}

// DefaultFormSchema is the fixed field set used by single-purpose flows when
// a campaign declares no schema of its own.
func DefaultFormSchema() []FormField {
	return []FormField{
		{
			ID:       "full_name",
			Label:    "Full name",
			Type:     FieldTypeInput,
			Required: true,
			Rules:    &ValidationRules{MinLength: 2, MaxLength: 120},
		},
		{
			ID:       "phone",
			Label:    "Phone number",
			Type:     FieldTypeInput,
			Required: true,
			Rules:    &ValidationRules{Phone: true},
		},
		{
			ID:       "email",
			Label:    "Email address",
			Type:     FieldTypeInput,
			Required: false,
			Rules:    &ValidationRules{Pattern: `^[^@\s]+@[^@\s]+\.[^@\s]+$`, MaxLength: 254},
		},
	}
}
