package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"CasaMoreno/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест: cookie authToken доступна через storage.FromContext
func TestWithStorage_CookieVisibleThroughContext(t *testing.T) {
	var (
		token string
		found bool
		err   error
	)
	h := WithStorage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, found, err = storage.FromContext().Get(r.Context(), storage.AuthTokenKey)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: storage.AuthTokenKey, Value: "abc123"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc123", token)
}

// Тест: без cookie токена нет, но и ошибки нет
func TestWithStorage_NoCookie(t *testing.T) {
	var (
		found bool
		err   error
	)
	h := WithStorage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found, err = storage.FromContext().Get(r.Context(), storage.AuthTokenKey)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NoError(t, err)
	assert.False(t, found)
}
