package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"CasaMoreno/internal/config"
	"CasaMoreno/internal/storage"
)

// ErrUsage is returned by a command when arguments are invalid and usage should be shown.
var ErrUsage = errors.New("usage")

// Command — подкоманда CLI витрины.
type Command interface {
	// Name — имя команды, как его набирает пользователь: "login".
	Name() string
	// Description — строка в общей справке.
	Description() string
	// Usage — точная строка использования: "login <customer>".
	Usage() string
	// Run выполняет команду; args без имени команды.
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// RegisterCmd adds a command to the registry. Should be called from init() of each command.
func RegisterCmd(cmd Command) {
	registry[strings.ToLower(cmd.Name())] = cmd
}

func lookup(name string) (Command, bool) {
	c, ok := registry[strings.ToLower(name)]
	return c, ok
}

func sortedCommands() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// noArgs — команды чтения каталога аргументов не принимают
func noArgs(args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	return nil
}

// sessionState описывает слот токена: путь к файлу authToken и вошёл ли покупатель
func sessionState(cfg *config.Config) string {
	if cfg == nil || cfg.TokenDir == "" {
		return "token slot unavailable"
	}
	slot := filepath.Join(cfg.TokenDir, storage.AuthTokenKey)
	token, found, err := tokenStore(cfg).Get(context.Background(), storage.AuthTokenKey)
	switch {
	case err != nil:
		return fmt.Sprintf("%s (unreadable: %v)", slot, err)
	case found && token != "":
		return slot + " (logged in)"
	default:
		return slot + " (anonymous)"
	}
}

// FormatGlobalUsage builds the help text: commands plus the API and token slot in effect.
func FormatGlobalUsage(cfg *config.Config) string {
	lines := []string{
		"Casa Moreno CLI",
		"",
		"Usage:",
		"  casamoreno [--api-url URL] [--token-dir DIR] [--partial-results] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range sortedCommands() {
		lines = append(lines, fmt.Sprintf("  %-28s %s", c.Usage(), c.Description()))
	}

	apiURL := "(not set)"
	if cfg != nil && cfg.APIURL != "" {
		apiURL = cfg.APIURL
	}
	lines = append(lines,
		"",
		"Current settings (env API_URL, TOKEN_DIR, PARTIAL_RESULTS):",
		"  API:    "+apiURL,
		"  Token:  "+sessionState(cfg),
	)
	return strings.Join(lines, "\n") + "\n"
}
