package middleware

import (
	"net/http"

	"CasaMoreno/internal/storage"
)

// WithStorage кладёт в контекст хранилище на cookie посетителя:
// клиент API прочитает из него authToken при запросах к бэкенду.
func WithStorage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := storage.NewContext(r.Context(), storage.Cookies(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
