package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Тест: без заголовка Accept-Encoding: gzip — ответа без сжатия
func TestWithGzip_NoAcceptEncoding(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("hello"))
	})
	h := WithGzip(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status want 200, got %d", rr.Code)
	}
	if ce := rr.Header().Get("Content-Encoding"); ce != "" {
		t.Fatalf("unexpected Content-Encoding: %q", ce)
	}
	if string(rr.Body.Bytes()) != "hello" {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}
}

// Тест: с Accept-Encoding: gzip — ответ сжат и корректно распаковывается
func TestWithGzip_WithAcceptEncoding(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// намеренно ставим Content-Length, чтобы убедиться, что мидлварь его убирает
		w.Header().Set("Content-Length", "5")
		_, _ = w.Write([]byte("hello"))
	})
	h := WithGzip(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip Content-Encoding, got %q", rr.Header().Get("Content-Encoding"))
	}

	// распаковываем
	gr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	if err != nil {
		t.Fatalf("failed to create gzip reader: %v", err)
	}
	defer gr.Close()
	data, err := io.ReadAll(gr)
	if err != nil {
		t.Fatalf("failed to read gzipped body: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected ungzipped body: %q", string(data))
	}
}

// Тест: статус из хендлера сохраняется, Vary выставлен
func TestWithGzip_KeepsStatusAndSetsVary(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "9")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	WithGzip(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status want 404, got %d", rr.Code)
	}
	if rr.Header().Get("Vary") != "Accept-Encoding" {
		t.Fatalf("expected Vary: Accept-Encoding, got %q", rr.Header().Get("Vary"))
	}
	if rr.Header().Get("Content-Length") != "" {
		t.Fatalf("Content-Length must be removed")
	}
}

// Тест: хендлер за мидлварью не видит Accept-Encoding и не сжимает ответ повторно
func TestWithGzip_StripsAcceptEncoding(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Accept-Encoding")
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	WithGzip(next).ServeHTTP(rr, req)

	if seen != "" {
		t.Fatalf("Accept-Encoding must not reach the handler, got %q", seen)
	}
	if req.Header.Get("Accept-Encoding") != "gzip" {
		t.Fatalf("original request must stay untouched")
	}
}

// Тест: HEAD, 204 и 304 не получают gzip-заголовок и пустой gzip-поток
func TestWithGzip_NoBodyResponsesUncompressed(t *testing.T) {
	tests := []struct {
		name   string
		method string
		status int
	}{
		{"head", http.MethodHead, http.StatusOK},
		{"no content", http.MethodGet, http.StatusNoContent},
		{"not modified", http.MethodGet, http.StatusNotModified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rr := httptest.NewRecorder()
			WithGzip(next).ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("status want %d, got %d", tt.status, rr.Code)
			}
			if ce := rr.Header().Get("Content-Encoding"); ce != "" {
				t.Fatalf("unexpected Content-Encoding: %q", ce)
			}
			if rr.Body.Len() != 0 {
				t.Fatalf("expected empty body, got %d bytes", rr.Body.Len())
			}
		})
	}
}

// Тест: уже сжатый хендлером ответ не сжимается второй раз
func TestWithGzip_RespectsExistingEncoding(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write([]byte("raw"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rr := httptest.NewRecorder()
	WithGzip(next).ServeHTTP(rr, req)

	if rr.Header().Get("Content-Encoding") != "br" || rr.Body.String() != "raw" {
		t.Fatalf("response must pass through, got %q %q", rr.Header().Get("Content-Encoding"), rr.Body.String())
	}
}
