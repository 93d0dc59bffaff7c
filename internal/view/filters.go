package view

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy

	registerFiltersOnce sync.Once
	registerFiltersErr  error
)

// SanitizeHTML cleans backend-supplied product HTML down to basic formatting.
func SanitizeHTML(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(sanitizer().Sanitize(trimmed))
}

func sanitizer() *bluemonday.Policy {
	descriptionPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		descriptionPolicy = policy
	})
	return descriptionPolicy
}

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL formats a price as Brazilian reais: 1234.5 -> "R$ 1.234,50".
func FormatBRL(v float64) string {
	out := "R$ " + brlPrinter.Sprintf("%.2f", math.Abs(v))
	if v < 0 && out != "R$ 0,00" {
		return "-" + out
	}
	return out
}

// CategoryPath builds the listing URL of a category: "Smart Home" -> "/products/smart%20home".
func CategoryPath(category string) string {
	return "/products/" + url.PathEscape(strings.ToLower(strings.TrimSpace(category)))
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func filterSanitize(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(SanitizeHTML(in.String())), nil
}

func filterBRL(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	f, ok := toFloat(in.Interface())
	if !ok {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(FormatBRL(f)), nil
}

func filterCategoryPath(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(CategoryPath(in.String())), nil
}

// pongo2 хранит фильтры глобально, поэтому регистрируем их один раз на процесс.
func registerFilters() error {
	registerFiltersOnce.Do(func() {
		filters := map[string]pongo2.FilterFunction{
			"sanitize":      filterSanitize,
			"brl":           filterBRL,
			"category_path": filterCategoryPath,
		}
		for name, fn := range filters {
			if pongo2.FilterExists(name) {
				continue
			}
			if err := pongo2.RegisterFilter(name, fn); err != nil {
				registerFiltersErr = fmt.Errorf("register filter %q: %w", name, err)
				return
			}
		}
	})
	return registerFiltersErr
}
