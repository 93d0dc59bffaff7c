package repo

import (
	"context"
	"errors"
	"strings"

	"CasaMoreno/internal/catalog/model"

	"gorm.io/gorm"
)

// ErrNotFound — категория не существует
var ErrNotFound = errors.New("not found")

// ProductRepository — доступ к товарам каталога.
type ProductRepository interface {
	// Categories возвращает различные категории, по алфавиту.
	Categories(ctx context.Context) ([]string, error)
	// Promotional возвращает акционные товары.
	Promotional(ctx context.Context) ([]model.Product, error)
	// ByCategory ищет товары категории без учёта регистра; ErrNotFound, если категории нет.
	ByCategory(ctx context.Context, category string) ([]model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Count(ctx context.Context) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository создаёт реализацию репозитория товаров.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Distinct("category").
		Order("category").
		Pluck("category", &out).Error
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func (r *productRepo) Promotional(ctx context.Context) ([]model.Product, error) {
	out := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("promotional = ?", true).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *productRepo) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	out := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&n).Error
	return n, err
}
