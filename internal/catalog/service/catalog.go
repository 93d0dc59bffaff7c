package service

import (
	"context"
	"fmt"
	"time"

	"CasaMoreno/internal/catalog/auth"
	"CasaMoreno/internal/catalog/model"
	"CasaMoreno/internal/catalog/repo"
)

// CatalogService — бизнес-логика dev-каталога.
type CatalogService struct {
	repo   repo.ProductRepository
	secret string
	now    func() time.Time
}

func NewCatalogService(r repo.ProductRepository, secret string) *CatalogService {
	return &CatalogService{repo: r, secret: secret, now: time.Now}
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *CatalogService) Promotional(ctx context.Context) ([]model.Product, error) {
	return s.repo.Promotional(ctx)
}

// ByCategory возвращает repo.ErrNotFound для неизвестной категории
func (s *CatalogService) ByCategory(ctx context.Context, category string) ([]model.Product, error) {
	return s.repo.ByCategory(ctx, category)
}

// IssueToken выдаёт dev-токен покупателю. Реальной проверки личности нет:
// это замена внешнему потоку авторизации для локального запуска.
func (s *CatalogService) IssueToken(_ context.Context, customer string) (string, error) {
	return auth.Issue(customer, s.secret, s.now())
}

// Seed заполняет пустой каталог демонстрационными товарами.
// Возвращает число добавленных записей; непустой каталог не трогает.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	for i := range demoProducts {
		p := demoProducts[i]
		if err := s.repo.Create(ctx, &p); err != nil {
			return i, fmt.Errorf("seed product %q: %w", p.Name, err)
		}
	}
	return len(demoProducts), nil
}

var demoProducts = []model.Product{
	{Name: "Smartphone Galaxy Nova", Category: "Smartphones", Price: 2499.90, Promotional: true,
		Description: "<p>Tela AMOLED de 6,5\" e câmera tripla de <b>64 MP</b>.</p>",
		ImageURL:    "https://images.casa-moreno.store/products/galaxy-nova.jpg"},
	{Name: "Smartphone Pixel Lite", Category: "Smartphones", Price: 1899.00,
		Description: "<p>Android puro com atualizações garantidas.</p>",
		ImageURL:    "https://images.casa-moreno.store/products/pixel-lite.jpg"},
	{Name: "Notebook UltraSlim 14", Category: "Laptops", Price: 5299.00, Promotional: true,
		Description: "<p>Processador de 8 núcleos, <i>16 GB</i> de RAM e SSD de 512 GB.</p>",
		ImageURL:    "https://images.casa-moreno.store/products/ultraslim-14.jpg"},
	{Name: "Notebook Gamer Vortex", Category: "Laptops", Price: 8999.90,
		Description: "<p>Placa de vídeo dedicada e tela de 144 Hz.</p>",
		ImageURL:    "https://images.casa-moreno.store/products/vortex.jpg"},
	{Name: "Fone Bluetooth Aura", Category: "Acessórios", Price: 349.90, Promotional: true,
		Description: "<p>Cancelamento de ruído ativo e 30 horas de bateria.</p>",
		ImageURL:    "https://images.casa-moreno.store/products/aura.jpg"},
	{Name: "Lâmpada Inteligente Lumi", Category: "Casa Inteligente", Price: 89.90, Promotional: true,
		Description: "<p>16 milhões de cores, controle por voz.</p>",
		ImageURL:    "https://images.casa-moreno.store/products/lumi.jpg"},
}
