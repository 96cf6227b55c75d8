package webhook

import (
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSalt = "1b3453d5c62848e4837a22f8eac8bc26"

func samplePayload() map[string]string {
	return map[string]string{
		"amount":             "249.00",
		"buyer":              "a@b.com",
		"buyer_name":         "Customer",
		"buyer_phone":        "+919999999990",
		"currency":           "INR",
		"fees":               "4.73",
		"payment_id":         "P1",
		"payment_request_id": "R1",
		"purpose":            "Simple Quran - Complete Bundle",
		"status":             "Credit",
	}
}

func signed(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[MACField] = Sign(testSalt, fields)
	return out
}

func TestSum_RFC2202Vector(t *testing.T) {
	t.Parallel()

	got := hex.EncodeToString(sum([]byte("key"), "The quick brown fox jumps over the lazy dog"))
	require.Equal(t, "de7c9b85b8b78aa6bc8a7a36f70a90701c9db4d9", got)
}

func TestMessage_SortedAndExcludesMAC(t *testing.T) {
	t.Parallel()

	msg := Message(map[string]string{
		"status":     "Credit",
		"amount":     "249.00",
		"mac":        "ignored",
		"payment_id": "P1",
	})
	require.Equal(t, "amount=249.00&payment_id=P1&status=Credit", msg)
}

func TestMessage_Empty(t *testing.T) {
	t.Parallel()
	require.Equal(t, "", Message(map[string]string{"mac": "x"}))
}

func TestVerify_OK(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testSalt, true)
	require.True(t, v.Enabled())
	require.NoError(t, v.Verify(signed(samplePayload())))
}

func TestVerify_UppercaseHexAccepted(t *testing.T) {
	t.Parallel()

	p := signed(samplePayload())
	p[MACField] = strings.ToUpper(p[MACField])
	require.NoError(t, NewVerifier(testSalt, true).Verify(p))
}

func TestVerify_Rejects(t *testing.T) {
	t.Parallel()

	v := NewVerifier(testSalt, true)

	t.Run("tampered field", func(t *testing.T) {
		p := signed(samplePayload())
		p["amount"] = "1.00"
		require.ErrorIs(t, v.Verify(p), ErrInvalidSignature)
	})

	t.Run("added field", func(t *testing.T) {
		p := signed(samplePayload())
		p["extra"] = "x"
		require.ErrorIs(t, v.Verify(p), ErrInvalidSignature)
	})

	t.Run("missing mac", func(t *testing.T) {
		require.ErrorIs(t, v.Verify(samplePayload()), ErrInvalidSignature)
	})

	t.Run("non-hex mac", func(t *testing.T) {
		p := samplePayload()
		p[MACField] = "zzzz"
		require.ErrorIs(t, v.Verify(p), ErrInvalidSignature)
	})

	t.Run("other salt", func(t *testing.T) {
		p := samplePayload()
		p[MACField] = Sign("another-salt", samplePayload())
		require.ErrorIs(t, v.Verify(p), ErrInvalidSignature)
	})
}

func TestVerify_EnabledWithoutSalt(t *testing.T) {
	t.Parallel()
	require.ErrorIs(t, NewVerifier("", true).Verify(signed(samplePayload())), ErrNotConfigured)
}

func TestVerify_Disabled_AcceptsAnything(t *testing.T) {
	t.Parallel()

	v := NewVerifier("", false)
	require.False(t, v.Enabled())
	require.NoError(t, v.Verify(map[string]string{"mac": "bogus"}))
}

func TestParsePayload_Form(t *testing.T) {
	t.Parallel()

	form := url.Values{}
	for k, val := range signed(samplePayload()) {
		form.Set(k, val)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/webhook-instamojo", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fields, err := ParsePayload(req)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", fields["buyer"])
	require.Equal(t, "Simple Quran - Complete Bundle", fields["purpose"])
	require.NoError(t, NewVerifier(testSalt, true).Verify(fields))
}

func TestParsePayload_JSON(t *testing.T) {
	t.Parallel()

	body := `{"payment_id":"P1","amount":249.00,"status":"Credit","buyer":"a@b.com","flag":true,"meta":{"k":1},"none":null}`
	req := httptest.NewRequest(http.MethodPost, "/api/webhook-instamojo", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	fields, err := ParsePayload(req)
	require.NoError(t, err)
	require.Equal(t, "P1", fields["payment_id"])
	require.Equal(t, "249.00", fields["amount"])
	require.Equal(t, "true", fields["flag"])
	require.Equal(t, `{"k":1}`, fields["meta"])
	require.Equal(t, "", fields["none"])
}

func TestParsePayload_JSONWithoutContentType(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(` {"status":"Failed"}`))
	req.Header.Del("Content-Type")

	fields, err := ParsePayload(req)
	require.NoError(t, err)
	require.Equal(t, "Failed", fields["status"])
}

func TestParsePayload_Malformed(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	_, err := ParsePayload(req)
	require.ErrorIs(t, err, ErrMalformedPayload)

	big := strings.Repeat("a", MaxBodyBytes+10)
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x="+big))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err = ParsePayload(req)
	require.ErrorIs(t, err, ErrMalformedPayload)
}
