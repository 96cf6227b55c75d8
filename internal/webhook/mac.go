// webhook разбирает уведомления Instamojo и проверяет их подпись (MAC).
//
// Подпись: HMAC-SHA1 (hex) по строке из отсортированных пар key=value,
// соединённых '&', по всем полям кроме mac. Ключ — приватная соль аккаунта.
package webhook

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// MACField — поле с подписью, в сообщение не входит.
const MACField = "mac"

var (
	// ErrInvalidSignature — подпись отсутствует или не совпала. HTTP: 401.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrNotConfigured — проверка включена, но соль не задана. HTTP: 500.
	ErrNotConfigured = errors.New("webhook verification not configured")
)

// Verifier проверяет подпись уведомлений.
type Verifier struct {
	salt    []byte
	enabled bool
}

// NewVerifier создаёт проверку подписи. enabled=false — явное отключение,
// вызывающий обязан его залогировать.
func NewVerifier(salt string, enabled bool) *Verifier {
	return &Verifier{salt: []byte(salt), enabled: enabled}
}

// Enabled сообщает, выполняется ли проверка.
func (v *Verifier) Enabled() bool { return v.enabled }

// Verify сверяет поле mac с вычисленной подписью.
func (v *Verifier) Verify(fields map[string]string) error {
	if !v.enabled {
		return nil
	}

	if len(v.salt) == 0 {
		return ErrNotConfigured
	}

	got, err := hex.DecodeString(strings.TrimSpace(fields[MACField]))
	if err != nil || len(got) != sha1.Size {
		return ErrInvalidSignature
	}

	if !hmac.Equal(got, sum(v.salt, Message(fields))) {
		return ErrInvalidSignature
	}

	return nil
}

// Message собирает подписываемую строку.
func Message(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == MACField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}

	return b.String()
}

// Sign возвращает hex-подпись набора полей. Нужна для тестов и отладки соли.
func Sign(salt string, fields map[string]string) string {
	return hex.EncodeToString(sum([]byte(salt), Message(fields)))
}

func sum(salt []byte, msg string) []byte {
	m := hmac.New(sha1.New, salt)
	m.Write([]byte(msg))
	return m.Sum(nil)
}
