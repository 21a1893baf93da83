package utils

// ValidateIdentityNumber validates an 11-digit national identity number.
// It checks the length, the digit range and both check digits.
func ValidateIdentityNumber(identity string) bool {
	// Must be exactly 11 ASCII digits
	if len(identity) != 11 {
		return false
	}
	digits := make([]int, 11)
	for i := 0; i < 11; i++ {
		ch := identity[i]
		if ch < '0' || ch > '9' {
			return false
		}
		digits[i] = int(ch - '0')
	}

	// First digit cannot be zero
	if digits[0] == 0 {
		return false
	}

	// Validate first check digit
	oddSum := digits[0] + digits[2] + digits[4] + digits[6] + digits[8]
	evenSum := digits[1] + digits[3] + digits[5] + digits[7]
	if (oddSum*7-evenSum)%10 != digits[9] {
		return false
	}

	// Validate second check digit
	total := 0
	for i := 0; i < 10; i++ {
		total += digits[i]
	}
	if total%10 != digits[10] {
		return false
	}

	return true
}
