package config

import (
	"flag"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL     = "localhost:8080"
	defaultCatalogAddr = "localhost:8081"
	defaultAPIURL      = "https://api.casa-moreno.store"
	defaultAuthSecret  = "dev-secret-key"
	defaultTheme       = "default"
)

type Config struct {
	// Storefront settings
	BaseURL        string `env:"BASE_URL"`
	APIURL         string `env:"API_URL"`
	Theme          string `env:"THEME"`
	ThemeVariant   string `env:"THEME_VARIANT"`
	PartialResults bool   `env:"PARTIAL_RESULTS"` // keep whichever backend read succeeded

	// Catalog (dev backend) settings
	CatalogAddr string `env:"CATALOG_ADDR"`
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`
	SeedCatalog bool   `env:"SEED_CATALOG"`

	// Client-side settings
	TokenDir string `env:"TOKEN_DIR"`
	Version  bool   `env:"-"` // show version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги переопределяют значения из env
	// Storefront flags
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "storefront listen address (host:port)")
	flag.StringVar(&cfg.APIURL, "api-url", cfg.APIURL, "base URL of the commerce API")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "theme name")
	flag.StringVar(&cfg.ThemeVariant, "theme-variant", cfg.ThemeVariant, "theme variant")
	flag.BoolVar(&cfg.PartialResults, "partial-results", cfg.PartialResults, "render whichever backend read succeeded instead of empty sections")
	// Catalog flags
	flag.StringVar(&cfg.CatalogAddr, "catalog-addr", cfg.CatalogAddr, "catalog backend listen address (host:port)")
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД каталога")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.BoolVar(&cfg.SeedCatalog, "seed", cfg.SeedCatalog, "seed demo products into an empty catalog")
	// Client flags
	flag.StringVar(&cfg.TokenDir, "token-dir", cfg.TokenDir, "directory of the client token slot")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	// Defaults
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}
	if !hostPortRe.MatchString(cfg.CatalogAddr) {
		cfg.CatalogAddr = defaultCatalogAddr
	}
	cfg.APIURL = normalizeAPIURL(cfg.APIURL)
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.Theme == "" {
		cfg.Theme = defaultTheme
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "catalog.sqlite"
	}
	if cfg.TokenDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.TokenDir = filepath.Join(dir, "CasaMoreno")
		}
	}

	return cfg
}

// normalizeAPIURL оставляет только абсолютный http(s) URL без завершающего слэша.
func normalizeAPIURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return defaultAPIURL
	}
	return strings.TrimRight(u.String(), "/")
}
