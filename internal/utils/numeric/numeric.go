// Package numeric reads the spellings of integer literals.
package numeric

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hexRegex     = regexp.MustCompile(`^0[xX][0-9a-fA-F]+$`)
	octalRegex   = regexp.MustCompile(`^0[0-7]*$`)
	decimalRegex = regexp.MustCompile(`^[1-9][0-9]*$`)
	// size and sign suffixes, in any case
	suffixRegex = regexp.MustCompile(`(?i)(ull|llu|ul|lu|ll|u|l)$`)
)

// IsHexadecimal checks if the string is a 0x-prefixed integer
func IsHexadecimal(s string) bool {
	return hexRegex.MatchString(s)
}

// IsOctal checks if the string is a 0-prefixed octal integer; "0" counts.
func IsOctal(s string) bool {
	return octalRegex.MatchString(s)
}

// IsDecimal checks if the string is a decimal integer without leading zeros
func IsDecimal(s string) bool {
	return decimalRegex.MatchString(s)
}

// StripSuffix removes an integer suffix such as u, L or ull.
func StripSuffix(s string) string {
	return suffixRegex.ReplaceAllString(s, "")
}

// StringToInteger parses a decimal, hexadecimal or octal literal with an
// optional leading minus and integer suffix.
func StringToInteger(s string) (int64, error) {
	digits := StripSuffix(s)
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var v int64
	var err error
	switch {
	case IsHexadecimal(digits):
		v, err = strconv.ParseInt(digits[2:], 16, 64)
	case digits == "0":
		v = 0
	case IsOctal(digits):
		v, err = strconv.ParseInt(digits[1:], 8, 64)
	case IsDecimal(digits):
		v, err = strconv.ParseInt(digits, 10, 64)
	default:
		return 0, fmt.Errorf("invalid integer literal %q", s)
	}
	if err != nil {
		return 0, fmt.Errorf("integer literal %q out of range", s)
	}
	if neg {
		v = -v
	}
	return v, nil
}

// FitsInBitSize checks if v is representable as a signed integer of
// bitSize bits.
func FitsInBitSize(v int64, bitSize int) bool {
	if bitSize >= 64 {
		return true
	}
	max := int64(1)<<(bitSize-1) - 1
	min := -max - 1
	return v >= min && v <= max
}
