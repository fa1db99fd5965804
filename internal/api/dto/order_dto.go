package dto

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goldendrops/storefront/internal/domain"
	"github.com/goldendrops/storefront/internal/service"
)

// OrderItemRequest is one checkout line.
type OrderItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (r OrderItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProductID, validation.Required),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1), validation.Max(100)),
	)
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress *domain.Address    `json:"shippingAddress"`
}

func (r PlaceOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required.Error("At least one item is required"), validation.Length(1, 50)),
	)
}

// Input converts the request for the order service.
func (r PlaceOrderRequest) Input() service.PlaceOrderInput {
	lines := make([]service.OrderLine, len(r.Items))
	for i, item := range r.Items {
		lines[i] = service.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return service.PlaceOrderInput{Items: lines, ShippingAddress: r.ShippingAddress}
}

// OrderStatusRequest changes an order's status.
type OrderStatusRequest struct {
	Status string `json:"status"`
}

func (r OrderStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In(
			string(domain.OrderStatusPending),
			string(domain.OrderStatusProcessing),
			string(domain.OrderStatusShipped),
			string(domain.OrderStatusDelivered),
			string(domain.OrderStatusCancelled),
		).Error("Unknown order status")),
	)
}
