// Package storage описывает клиентское хранилище, из которого API-клиент
// читает токен авторизации. Хранилище только читается; запись выполняет
// внешний процесс аутентификации.
package storage

import (
	"context"
	"errors"
	"net/http"
	"sync"
)

// AuthTokenKey — имя слота, в котором лежит токен авторизации.
const AuthTokenKey = "authToken"

// ErrUnavailable возвращается, когда в текущем контексте выполнения
// клиентского хранилища нет (например, запрос не пришёл из браузера).
var ErrUnavailable = errors.New("storage: client-side storage unavailable")

// Reader описывает абстракцию чтения слота хранилища.
// Отсутствие значения — ok=false и err=nil.
type Reader interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// ReaderFunc позволяет использовать функцию как Reader.
type ReaderFunc func(ctx context.Context, key string) (string, bool, error)

func (f ReaderFunc) Get(ctx context.Context, key string) (string, bool, error) {
	return f(ctx, key)
}

// Memory — хранилище в памяти процесса.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory создаёт хранилище с начальными значениями.
func NewMemory(items map[string]string) *Memory {
	m := &Memory{items: make(map[string]string, len(items))}
	for k, v := range items {
		m.items[k] = v
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// Set записывает значение слота.
func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[string]string)
	}
	m.items[key] = value
}

// Delete удаляет слот.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
}

type cookieReader struct {
	r *http.Request
}

// Cookies возвращает хранилище, представленное cookie входящего запроса браузера.
// Для nil-запроса хранилище недоступно.
func Cookies(r *http.Request) Reader {
	return cookieReader{r: r}
}

func (c cookieReader) Get(_ context.Context, key string) (string, bool, error) {
	if c.r == nil {
		return "", false, ErrUnavailable
	}
	cookie, err := c.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return cookie.Value, true, nil
}

type ctxKey struct{}

// NewContext прикрепляет хранилище к контексту запроса.
func NewContext(ctx context.Context, r Reader) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// ReaderFromContext возвращает хранилище, прикреплённое к контексту.
func ReaderFromContext(ctx context.Context) (Reader, bool) {
	r, ok := ctx.Value(ctxKey{}).(Reader)
	return r, ok && r != nil
}

// FromContext возвращает Reader, который на каждый вызов ищет хранилище
// в переданном контексте. Если его там нет, хранилище считается недоступным.
func FromContext() Reader {
	return ReaderFunc(func(ctx context.Context, key string) (string, bool, error) {
		r, ok := ReaderFromContext(ctx)
		if !ok {
			return "", false, ErrUnavailable
		}
		return r.Get(ctx, key)
	})
}
