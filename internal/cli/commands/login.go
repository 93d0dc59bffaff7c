package commands

import (
	"context"
	"fmt"
	"strings"

	"CasaMoreno/internal/config"
	"CasaMoreno/internal/storage"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Get a token and store it in the token slot" }
func (loginCmd) Usage() string       { return "login <customer>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return ErrUsage
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	token, err := client.IssueToken(ctx, args[0])
	if err != nil {
		return err
	}
	if err := tokenStore(cfg).Save(storage.AuthTokenKey, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	fmt.Fprintln(Out, "Logged in successfully")
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Remove the stored token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if err := noArgs(args); err != nil {
		return err
	}
	if err := tokenStore(cfg).Delete(storage.AuthTokenKey); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
}
