// Package loader собирает входные данные страниц до рендера.
// Ошибки бэкенда никогда не доходят до страницы: вместо них подставляются пустые списки.
package loader

import (
	"context"
	"errors"
	"time"

	"CasaMoreno/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Page names used in logs and metrics.
const (
	PageHome     = "home"
	PageOffers   = "offers"
	PageCategory = "category"
)

// CatalogAPI — чтения коммерческого API, нужные страницам.
type CatalogAPI interface {
	Categories(ctx context.Context) ([]string, error)
	PromotionalProducts(ctx context.Context) ([]model.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
}

// Recorder receives fetch timings and fallbacks; *metrics.Manager implements it.
type Recorder interface {
	ObserveBackend(endpoint string, d time.Duration, err error)
	IncFallback(page string)
}

// Result — props страницы и причина, по которой были подставлены значения по умолчанию.
// Props всегда корректны, даже если Err != nil.
type Result[P any] struct {
	Props P
	Err   error
}

// Failed reports whether the props are fallback values.
func (r Result[P]) Failed() bool { return r.Err != nil }

// Loader выполняет чтения через общий API-клиент.
type Loader struct {
	api      CatalogAPI
	logger   *zap.SugaredLogger
	recorder Recorder
	partial  bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(l *Loader) { l.recorder = r }
}

// WithPartialResults keeps whichever read succeeded instead of discarding both.
// Off by default.
func WithPartialResults() Option {
	return func(l *Loader) { l.partial = true }
}

// New создаёт загрузчик.
func New(api CatalogAPI, logger *zap.SugaredLogger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	l := &Loader{api: api, logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Home читает категории и акционные товары параллельно и ждёт завершения обоих чтений.
// Если хотя бы одно чтение упало, оба поля пустые (если не включён WithPartialResults).
func (l *Loader) Home(ctx context.Context) Result[model.HomeProps] {
	var (
		g          errgroup.Group
		categories []string
		promos     []model.Product
		catErr     error
		promoErr   error
	)
	g.Go(func() error {
		categories, catErr = observe(l, "categories", func() ([]string, error) {
			return l.api.Categories(ctx)
		})
		return catErr
	})
	g.Go(func() error {
		promos, promoErr = observe(l, "promotional", func() ([]model.Product, error) {
			return l.api.PromotionalProducts(ctx)
		})
		return promoErr
	})
	if g.Wait() == nil {
		return Result[model.HomeProps]{Props: model.HomeProps{
			Categories:          orEmpty(categories),
			PromotionalProducts: orEmpty(promos),
		}}
	}

	err := errors.Join(catErr, promoErr)
	l.fallback(PageHome, err)

	props := model.EmptyHome()
	if l.partial {
		if catErr == nil {
			props.Categories = orEmpty(categories)
		}
		if promoErr == nil {
			props.PromotionalProducts = orEmpty(promos)
		}
	}
	return Result[model.HomeProps]{Props: props, Err: err}
}

// Offers читает список акционных товаров для страницы предложений.
func (l *Loader) Offers(ctx context.Context) Result[model.ListingProps] {
	products, err := observe(l, "promotional", func() ([]model.Product, error) {
		return l.api.PromotionalProducts(ctx)
	})
	if err != nil {
		l.fallback(PageOffers, err)
		return Result[model.ListingProps]{Props: model.EmptyListing(""), Err: err}
	}
	return Result[model.ListingProps]{Props: model.ListingProps{Products: orEmpty(products)}}
}

// Category читает товары одной категории.
func (l *Loader) Category(ctx context.Context, category string) Result[model.ListingProps] {
	products, err := observe(l, "category", func() ([]model.Product, error) {
		return l.api.ProductsByCategory(ctx, category)
	})
	if err != nil {
		l.fallback(PageCategory, err, "category", category)
		return Result[model.ListingProps]{Props: model.EmptyListing(category), Err: err}
	}
	return Result[model.ListingProps]{Props: model.ListingProps{Category: category, Products: orEmpty(products)}}
}

func (l *Loader) fallback(page string, err error, kv ...any) {
	fields := append([]any{"page", page, "error", err}, kv...)
	l.logger.Errorw("Failed to fetch page data", fields...)
	if l.recorder != nil {
		l.recorder.IncFallback(page)
	}
}

func observe[T any](l *Loader, endpoint string, fetch func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fetch()
	if l.recorder != nil {
		l.recorder.ObserveBackend(endpoint, time.Since(start), err)
	}
	return v, err
}

// orEmpty превращает JSON null в пустой список, чтобы props всегда были корректны.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
