package model

// Product — запись товара в том виде, в каком её отдаёт коммерческий API.
// Форма принадлежит бэкенду, витрина не интерпретирует её.
type Product map[string]any

// HomeProps — входные данные главной страницы.
type HomeProps struct {
	Categories          []string  `json:"categories"`
	PromotionalProducts []Product `json:"promotionalProducts"`
}

// EmptyHome возвращает корректные пустые props главной страницы.
func EmptyHome() HomeProps {
	return HomeProps{Categories: []string{}, PromotionalProducts: []Product{}}
}

// ListingProps — входные данные страницы списка товаров (категория, акции).
type ListingProps struct {
	Category string    `json:"category,omitempty"`
	Products []Product `json:"products"`
}

// EmptyListing возвращает пустой список для категории.
func EmptyListing(category string) ListingProps {
	return ListingProps{Category: category, Products: []Product{}}
}
