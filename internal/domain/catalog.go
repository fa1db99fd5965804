package domain

import "time"

// Category groups products in the storefront navigation.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Image       string    `json:"image,omitempty"`
	BgColor     string    `json:"bgColor"`
	TextColor   string    `json:"textColor"`
	Active      bool      `json:"isActive"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	DefaultCategoryBgColor   = "bg-amber-50"
	DefaultCategoryTextColor = "text-amber-900"
)

// Product is a sellable catalog item. Inactive products are soft-deleted and
// never listed publicly.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OldPrice      float64   `json:"oldPrice,omitempty"`
	CategoryID    string    `json:"categoryId"`
	CategoryName  string    `json:"categoryName,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Size          string    `json:"size,omitempty"`
	Unit          string    `json:"unit,omitempty"`
	Images        []string  `json:"images"`
	InStock       bool      `json:"inStock"`
	StockQuantity int       `json:"stockQuantity"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	Badge         string    `json:"badge,omitempty"`
	Featured      bool      `json:"featured"`
	Active        bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
