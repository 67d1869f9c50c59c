package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "super-secret"

func signedTarget(t *testing.T, path string, query url.Values) string {
	t.Helper()

	signature := Sign(testSecret, http.MethodGet, path, query)

	signed := url.Values{}
	for key, values := range query {
		signed[key] = values
	}
	signed.Set(SignatureParam, signature)

	return path + "?" + signed.Encode()
}

func serve(target string) *httptest.ResponseRecorder {
	handler := SignatureVerification(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestSignatureVerification_ValidSignature(t *testing.T) {
	query := url.Values{"w": {"800"}, "h": {"600"}}

	rec := serve(signedTarget(t, "/image/photo.jpg", query))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignatureVerification_MissingSignature(t *testing.T) {
	rec := serve("/image/photo.jpg?w=800")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid signature", strings.TrimSpace(rec.Body.String()))
}

func TestSignatureVerification_TamperedQuery(t *testing.T) {
	query := url.Values{"w": {"800"}}
	target := signedTarget(t, "/image/photo.jpg", query)

	rec := serve(strings.Replace(target, "w=800", "w=2000", 1))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid signature", strings.TrimSpace(rec.Body.String()))
}

func TestSignatureVerification_WrongSecret(t *testing.T) {
	query := url.Values{"w": {"800"}}
	signature := Sign("other-secret", http.MethodGet, "/image/photo.jpg", query)

	rec := serve("/image/photo.jpg?w=800&sig=" + signature)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSign_QueryOrderIndependent(t *testing.T) {
	a := Sign(testSecret, http.MethodGet, "/p", url.Values{"a": {"1"}, "b": {"2"}})
	b := Sign(testSecret, http.MethodGet, "/p", url.Values{"b": {"2"}, "a": {"1"}})

	assert.Equal(t, a, b)
}
