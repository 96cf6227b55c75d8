package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// HardcopyEnquiry — заявка на печатный экземпляр.
type HardcopyEnquiry struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	Pincode  string   `json:"pincode"`
	Quantity Quantity `json:"quantity"`
	Message  string   `json:"message"`
}

// Quantity принимает из формы как число, так и строку с числом.
type Quantity int

var errQuantity = errors.New("quantity must be a whole number")

func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*q = 0
		return nil
	}

	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return errQuantity
		}
	} else {
		raw = string(b)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*q = 0
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return errQuantity
	}

	*q = Quantity(n)
	return nil
}

// TestEmailRequest — тело POST /api/test-email.
type TestEmailRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
