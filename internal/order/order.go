package order

import (
	"time"
)

// Order is a purchasable unit with a lifecycle status and a total amount owed.
type Order struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	CustomerName string    `json:"customer_name" gorm:"column:customer_name"`
	Items        string    `json:"items" gorm:"column:items"`
	TotalAmount  *float64  `json:"total_amount" gorm:"column:total_amount"`
	Status       string    `json:"status" gorm:"column:status;default:PLACED"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Order) TableName() string {
	return "orders"
}

const (
	StatusPlaced     = "PLACED"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"
)

// IsPlaceable reports whether the order may still receive its first payment.
func (o *Order) IsPlaceable() bool {
	return o.Status == StatusPlaced
}

func (o *Order) Cancel() {
	o.Status = StatusCancelled
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func NewOrder(dto CreateOrderDTO) *Order {
	return &Order{
		CustomerName: dto.CustomerName,
		Items:        dto.Items,
		TotalAmount:  dto.TotalAmount,
		Status:       StatusPlaced,
		CreatedAt:    time.Now(),
	}
}
