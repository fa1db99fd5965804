package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goldendrops/storefront/internal/service"
)

// CategoryRequest is used for create (name required) and partial update.
type CategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Image       *string `json:"image"`
	BgColor     *string `json:"bgColor"`
	TextColor   *string `json:"textColor"`
	IsActive    *bool   `json:"isActive"`
	Order       *int    `json:"order"`

	creating bool
}

// ForCreate marks the request as a create so required fields are enforced.
func (r CategoryRequest) ForCreate() CategoryRequest {
	r.creating = true
	return r
}

func (r CategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.creating, validation.Required.Error("Name is required")),
			validation.NilOrNotEmpty.Error("Name cannot be blank"),
			validation.Length(1, 100)),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Order, validation.Min(0)),
	)
}

// Input converts the request for the catalog service.
func (r CategoryRequest) Input() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		Icon:        r.Icon,
		Image:       r.Image,
		BgColor:     r.BgColor,
		TextColor:   r.TextColor,
		Active:      r.IsActive,
		Order:       r.Order,
	}
}

// ProductRequest is used for create (name, price, categoryId required) and
// partial update.
type ProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	OldPrice      *float64 `json:"oldPrice"`
	CategoryID    *string  `json:"categoryId"`
	Brand         *string  `json:"brand"`
	Size          *string  `json:"size"`
	Unit          *string  `json:"unit"`
	Images        []string `json:"images"`
	InStock       *bool    `json:"inStock"`
	StockQuantity *int     `json:"stockQuantity"`
	Rating        *float64 `json:"rating"`
	Reviews       *int     `json:"reviews"`
	Badge         *string  `json:"badge"`
	Featured      *bool    `json:"featured"`
	IsActive      *bool    `json:"isActive"`

	creating bool
}

// ForCreate marks the request as a create so required fields are enforced.
func (r ProductRequest) ForCreate() ProductRequest {
	r.creating = true
	return r
}

func (r ProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.creating, validation.Required.Error("Name is required")),
			validation.NilOrNotEmpty.Error("Name cannot be blank"),
			validation.Length(1, 200)),
		validation.Field(&r.Price,
			validation.When(r.creating, validation.NotNil.Error("Price is required")),
			validation.Min(0.0)),
		validation.Field(&r.OldPrice, validation.Min(0.0)),
		validation.Field(&r.CategoryID,
			validation.When(r.creating, validation.Required.Error("Category is required")),
			validation.NilOrNotEmpty,
			is.UUID),
		validation.Field(&r.StockQuantity, validation.Min(0)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&r.Reviews, validation.Min(0)),
	)
}

// Input converts the request for the catalog service.
func (r ProductRequest) Input() service.ProductInput {
	return service.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OldPrice:      r.OldPrice,
		CategoryID:    r.CategoryID,
		Brand:         r.Brand,
		Size:          r.Size,
		Unit:          r.Unit,
		Images:        r.Images,
		InStock:       r.InStock,
		StockQuantity: r.StockQuantity,
		Rating:        r.Rating,
		Reviews:       r.Reviews,
		Badge:         r.Badge,
		Featured:      r.Featured,
		Active:        r.IsActive,
	}
}
