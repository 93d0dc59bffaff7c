package view

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var defaultThemes []byte

type themeFile struct {
	Themes []themeSpec `yaml:"themes"`
}

type themeSpec struct {
	Name     string                       `yaml:"name"`
	Version  string                       `yaml:"version"`
	Tokens   map[string]map[string]string `yaml:"tokens"`
	Assets   assetsSpec                   `yaml:"assets"`
	Variants map[string]variantSpec       `yaml:"variants"`
}

type variantSpec struct {
	Tokens map[string]map[string]string `yaml:"tokens"`
	Assets assetsSpec                   `yaml:"assets"`
}

type assetsSpec struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// ParseThemes decodes a YAML theme file into go-theme manifests.
// Token groups are flattened: colors.primaryBlue, breakpoints.mobile.
func ParseThemes(data []byte) ([]*theme.Manifest, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode themes: %w", err)
	}
	out := make([]*theme.Manifest, 0, len(f.Themes))
	for _, spec := range f.Themes {
		if strings.TrimSpace(spec.Name) == "" {
			return nil, fmt.Errorf("theme without name")
		}
		m := &theme.Manifest{
			Name:    spec.Name,
			Version: spec.Version,
			Tokens:  flattenTokens(spec.Tokens),
			Assets:  theme.Assets{Prefix: spec.Assets.Prefix, Files: spec.Assets.Files},
		}
		if len(spec.Variants) > 0 {
			m.Variants = make(map[string]theme.Variant, len(spec.Variants))
			for name, v := range spec.Variants {
				m.Variants[name] = theme.Variant{
					Tokens: flattenTokens(v.Tokens),
					Assets: theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
				}
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func flattenTokens(groups map[string]map[string]string) map[string]string {
	out := make(map[string]string)
	for group, tokens := range groups {
		for name, value := range tokens {
			out[group+"."+name] = value
		}
	}
	return out
}

// Themes — набор манифестов; реализует theme.ThemeSelector.
type Themes struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Themes)(nil)

// NewThemes builds a selector over the manifests; the first manifest is the default theme.
func NewThemes(manifests []*theme.Manifest, defaultTheme, defaultVariant string) (*Themes, error) {
	if len(manifests) == 0 {
		return nil, fmt.Errorf("no themes")
	}
	t := &Themes{manifests: make(map[string]*theme.Manifest, len(manifests)), defaultVariant: defaultVariant}
	for _, m := range manifests {
		if m == nil {
			continue
		}
		t.manifests[m.Name] = m
	}
	t.defaultTheme = manifests[0].Name
	if defaultTheme != "" {
		if _, ok := t.manifests[defaultTheme]; !ok {
			return nil, fmt.Errorf("unknown theme %q", defaultTheme)
		}
		t.defaultTheme = defaultTheme
	}
	return t, nil
}

// DefaultThemes loads the embedded theme file.
func DefaultThemes(name, variant string) (*Themes, error) {
	manifests, err := ParseThemes(defaultThemes)
	if err != nil {
		return nil, err
	}
	return NewThemes(manifests, name, variant)
}

// Select resolves a theme and variant, falling back to the defaults for empty names.
func (t *Themes) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name == "" {
		name = t.defaultTheme
	}
	if variant == "" {
		variant = t.defaultVariant
	}
	m, ok := t.manifests[name]
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	if variant != "" {
		if _, ok := m.Variants[variant]; !ok {
			return nil, fmt.Errorf("theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: m}, nil
}

// ThemeContext — разрешённые токены темы, доступные шаблонам.
type ThemeContext struct {
	Name         string
	Variant      string
	Tokens       map[string]string
	CSSVars      map[string]string
	CSSVarsStyle string
	Colors       map[string]string
	Breakpoints  map[string]string
	assets       map[string]string
}

// AssetURL resolves a named theme asset, "" when unknown.
func (c ThemeContext) AssetURL(key string) string {
	return c.assets[key]
}

// Resolve merges variant tokens and assets over the base manifest.
func Resolve(sel *theme.Selection) ThemeContext {
	ctx := ThemeContext{
		Tokens:      map[string]string{},
		CSSVars:     map[string]string{},
		Colors:      map[string]string{},
		Breakpoints: map[string]string{},
		assets:      map[string]string{},
	}
	if sel == nil || sel.Manifest == nil {
		return ctx
	}
	ctx.Name, ctx.Variant = sel.Theme, sel.Variant

	m := sel.Manifest
	for k, v := range m.Tokens {
		ctx.Tokens[k] = v
	}
	addAssets(ctx.assets, m.Assets.Prefix, m.Assets)
	if v, ok := m.Variants[sel.Variant]; ok {
		for k, val := range v.Tokens {
			ctx.Tokens[k] = val
		}
		prefix := v.Assets.Prefix
		if prefix == "" {
			prefix = m.Assets.Prefix
		}
		addAssets(ctx.assets, prefix, v.Assets)
	}

	for k, v := range ctx.Tokens {
		group, name, found := strings.Cut(k, ".")
		if !found {
			continue
		}
		switch group {
		case "colors":
			ctx.Colors[name] = v
			ctx.CSSVars["--color-"+kebab(name)] = v
		case "breakpoints":
			ctx.Breakpoints[name] = v
		default:
			ctx.CSSVars["--"+group+"-"+kebab(name)] = v
		}
	}
	ctx.CSSVarsStyle = cssVarsStyle(ctx.CSSVars)
	return ctx
}

func addAssets(dst map[string]string, prefix string, a theme.Assets) {
	for key, file := range a.Files {
		if prefix == "" {
			dst[key] = file
			continue
		}
		dst[key] = strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+vars[key]+";")
	}
	return strings.Join(parts, " ")
}

// kebab: primaryBlue -> primary-blue
func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('-')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
