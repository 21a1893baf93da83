package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateIdentityNumber(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		valid    bool
	}{
		// Valid identity numbers
		{
			name:     "Valid identity - reference example",
			identity: "16049008266",
			valid:    true,
		},
		{
			name:     "Valid identity - minimal digits",
			identity: "10000000078",
			valid:    true,
		},
		{
			name:     "Valid identity - mixed digits",
			identity: "34567891238",
			valid:    true,
		},

		// Invalid identity numbers
		{
			name:     "Invalid identity - leading zero",
			identity: "06049008266",
			valid:    false,
		},
		{
			name:     "Invalid identity - wrong first check digit",
			identity: "16049008276",
			valid:    false,
		},
		{
			name:     "Invalid identity - wrong second check digit",
			identity: "16049008265",
			valid:    false,
		},
		{
			name:     "Invalid identity - too short",
			identity: "1604900826",
			valid:    false,
		},
		{
			name:     "Invalid identity - too long",
			identity: "160490082666",
			valid:    false,
		},
		{
			name:     "Invalid identity - non-digit character",
			identity: "1604900826a",
			valid:    false,
		},
		{
			name:     "Invalid identity - empty string",
			identity: "",
			valid:    false,
		},
		{
			name:     "Invalid identity - only letters",
			identity: "abcdefghijk",
			valid:    false,
		},
		{
			name:     "Invalid identity - whitespace",
			identity: " 6049008266",
			valid:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateIdentityNumber(tt.identity)
			assert.Equal(t, tt.valid, result, "ValidateIdentityNumber(%q) should be %v", tt.identity, tt.valid)
		})
	}
}

func TestValidateIdentityNumber_Deterministic(t *testing.T) {
	inputs := []string{"16049008266", "06049008266", "1604900826a", ""}
	for _, input := range inputs {
		first := ValidateIdentityNumber(input)
		second := ValidateIdentityNumber(input)
		assert.Equal(t, first, second, "repeated validation of %q must agree", input)
	}
}
