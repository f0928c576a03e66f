package utils

import (
	"regexp"
)

var phonePattern = regexp.MustCompile(`^01[0-9]\d{7,8}$`)

// ValidatePhone checks the Korean mobile number format (010-xxxx-xxxx
// without separators).
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
