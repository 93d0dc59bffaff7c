package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse_RoundTrip(t *testing.T) {
	token, err := Issue("maria", "secret", time.Now())
	require.NoError(t, err)

	customer, err := Parse(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "maria", customer)
}

func TestIssue_EmptyCustomer(t *testing.T) {
	_, err := Issue("  ", "secret", time.Now())
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	token, err := Issue("maria", "secret-A", time.Now())
	require.NoError(t, err)

	// чужой секрет
	_, err = Parse(token, "secret-B")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// истёкший
	old, err := Issue("maria", "secret-A", time.Now().Add(-2*TokenTTL))
	require.NoError(t, err)
	_, err = Parse(old, "secret-A")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Parse("garbage", "secret-A")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWithBearer(t *testing.T) {
	token, err := Issue("maria", "secret", time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   string
		wantOK bool
	}{
		{"valid", "Bearer " + token, "maria", true},
		{"lowercase scheme", "bearer " + token, "maria", true},
		{"no header", "", "", false},
		{"wrong scheme", "Basic " + token, "", false},
		{"bad token", "Bearer nope", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				got string
				ok  bool
			)
			h := WithBearer("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, ok = GetCustomerFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			// анонимный запрос тоже проходит
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
