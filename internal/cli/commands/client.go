package commands

import (
	"encoding/json"
	"fmt"

	"CasaMoreno/internal/api"
	"CasaMoreno/internal/config"
	"CasaMoreno/internal/storage/fs"
)

// tokenStore — файловый слот токена CLI
func tokenStore(cfg *config.Config) fs.Store {
	return fs.Store{Dir: cfg.TokenDir}
}

// newClient строит клиент API; токен читается из файлового слота при каждом запросе
func newClient(cfg *config.Config) (*api.Client, error) {
	client, err := api.New(cfg.APIURL, api.WithStorage(tokenStore(cfg)))
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	return client, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
