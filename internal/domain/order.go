package domain

import "time"

// OrderStatus tracks fulfilment progress.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// OrderItem snapshots a product at the time the order was placed.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is a customer purchase.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress Address     `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// DashboardStats summarises the store for the admin dashboard.
type DashboardStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	ActiveUsers   int64   `json:"activeUsers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	PendingOrders int64   `json:"pendingOrders"`
	Revenue       float64 `json:"revenue"`
}
