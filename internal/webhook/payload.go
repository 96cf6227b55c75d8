package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// MaxBodyBytes — предел размера тела уведомления.
const MaxBodyBytes = 64 << 10

// ErrMalformedPayload — тело не разбирается ни как форма, ни как JSON.
var ErrMalformedPayload = errors.New("malformed webhook payload")

// ParsePayload читает тело уведомления в плоский набор строковых полей.
// Instamojo шлёт application/x-www-form-urlencoded; JSON тоже принимается,
// нестроковые значения переводятся в их JSON-представление.
func ParsePayload(r *http.Request) (map[string]string, error) {
	const op = "webhook.ParsePayload"

	raw, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(raw) > MaxBodyBytes {
		return nil, fmt.Errorf("%s: body too large: %w", op, ErrMalformedPayload)
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" || (ct == "" && looksLikeJSON(raw)) {
		fields, err := fieldsFromJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return fields, nil
	}

	values, err := url.ParseQuery(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrMalformedPayload)
	}

	fields := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}

	return fields, nil
}

func looksLikeJSON(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func fieldsFromJSON(raw []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, ErrMalformedPayload
	}

	fields := make(map[string]string, len(obj))
	for k, v := range obj {
		switch val := v.(type) {
		case nil:
			fields[k] = ""
		case string:
			fields[k] = val
		case json.Number:
			fields[k] = val.String()
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, ErrMalformedPayload
			}
			fields[k] = string(b)
		}
	}

	return fields, nil
}
