package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"CasaMoreno/internal/storage"
)

var keyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store — файловое хранилище слотов для CLI: один файл на ключ в каталоге Dir.
type Store struct {
	Dir string
}

var _ storage.Reader = Store{}

// DefaultDir возвращает каталог слотов в пользовательском config-каталоге.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "CasaMoreno"), nil
}

func (s Store) path(key string) (string, error) {
	if !keyRe.MatchString(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	dir := s.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	return filepath.Join(dir, key), nil
}

// Get читает слот. Отсутствующий или пустой файл означает отсутствие значения.
func (s Store) Get(_ context.Context, key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	// обрезаем завершающие переводы строки/пробелы
	v := strings.TrimRight(string(b), "\r\n\t ")
	if v == "" {
		return "", false, nil
	}
	return v, true, nil
}

// Save сохраняет значение слота.
func (s Store) Save(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0o600)
}

// Delete удаляет слот; отсутствие файла ошибкой не считается.
func (s Store) Delete(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
