package order

import (
	errors "github.com/frahmantamala/order-payment/internal"
	"github.com/frahmantamala/order-payment/internal/core/common/validation"
)

// CreateOrderDTO represents the request payload for creating an order
type CreateOrderDTO struct {
	CustomerName string   `json:"customer_name"`
	Items        string   `json:"items"`
	TotalAmount  *float64 `json:"total_amount"`
}

func (dto CreateOrderDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("customer_name", dto.CustomerName).Required().MaxLength(255)
	validator.Field("items", dto.Items).Required()
	validator.Field("total_amount", dto.TotalAmount).Required().Positive(errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// UpdateOrderDTO represents the request payload for updating an order
type UpdateOrderDTO struct {
	CustomerName string   `json:"customer_name"`
	Items        string   `json:"items"`
	TotalAmount  *float64 `json:"total_amount"`
	Status       string   `json:"status"`
}

func (dto UpdateOrderDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("customer_name", dto.CustomerName).Required().MaxLength(255)
	validator.Field("items", dto.Items).Required()
	validator.Field("total_amount", dto.TotalAmount).Required().Positive(errors.ErrCodeInvalidAmount)
	validator.Field("status", dto.Status).Required().
		OneOf([]string{StatusPlaced, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}, errors.ErrCodeInvalidStatus)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
