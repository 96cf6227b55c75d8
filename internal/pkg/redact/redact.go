// redact маскирует персональные данные и секреты перед записью в лог.
package redact

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Email оставляет первые две руны локальной части и домен.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if utf8.RuneCountInString(local) > 2 {
		r := []rune(local)
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Phone оставляет только последние четыре цифры.
func Phone(s string) string {
	digits := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}

	if len(digits) <= 4 {
		return "***"
	}

	return "***" + string(digits[len(digits)-4:])
}

// Secret никогда не раскрывает значение, только факт наличия и длину.
func Secret(s string) string {
	if s == "" {
		return "[EMPTY]"
	}

	return "[REDACTED len=" + strconv.Itoa(len(s)) + "]"
}

func Token() string { return "[REDACTED_TOKEN]" }
