package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentCreated  = "payment.created"
	EventTypePaymentRefunded = "payment.refunded"
)

type PaymentCreatedEvent struct {
	BaseEvent
	PaymentID     int64   `json:"payment_id"`
	OrderID       int64   `json:"order_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
}

func NewPaymentCreatedEvent(paymentID, orderID int64, amount float64, paymentMethod string) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":     paymentID,
				"order_id":       orderID,
				"amount":         amount,
				"payment_method": paymentMethod,
			},
		},
		PaymentID:     paymentID,
		OrderID:       orderID,
		Amount:        amount,
		PaymentMethod: paymentMethod,
	}
}

type PaymentRefundedEvent struct {
	BaseEvent
	PaymentID int64   `json:"payment_id"`
	OrderID   int64   `json:"order_id"`
	Amount    float64 `json:"amount"`
}

func NewPaymentRefundedEvent(paymentID, orderID int64, amount float64) *PaymentRefundedEvent {
	return &PaymentRefundedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentRefunded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id": paymentID,
				"order_id":   orderID,
				"amount":     amount,
			},
		},
		PaymentID: paymentID,
		OrderID:   orderID,
		Amount:    amount,
	}
}
