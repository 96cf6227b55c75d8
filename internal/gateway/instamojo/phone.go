package instamojo

import (
	"errors"
	"strings"
	"unicode"
)

// CountryCode — префикс, с которым процессор принимает номер (нужен для UPI).
const CountryCode = "+91"

// ErrInvalidPhone — после очистки осталось не ровно 10 цифр. HTTP: 400.
var ErrInvalidPhone = errors.New("invalid phone number format")

// NormalizePhone приводит номер к виду +91XXXXXXXXXX.
// Разделители (пробелы, '-', скобки) и существующий префикс страны удаляются.
func NormalizePhone(raw string) (string, error) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, raw)

	switch {
	case strings.HasPrefix(clean, CountryCode):
		clean = clean[len(CountryCode):]
	case strings.HasPrefix(clean, "91") && len(clean) > 10:
		clean = clean[2:]
	}

	if len(clean) != 10 {
		return "", ErrInvalidPhone
	}

	for _, r := range clean {
		if r < '0' || r > '9' {
			return "", ErrInvalidPhone
		}
	}

	return CountryCode + clean, nil
}

// SanitizeCredential вырезает пробельные и управляющие символы,
// которые попадают в ключи при копировании из панели процессора.
func SanitizeCredential(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '\u2028' || r == '\u2029' || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
}
