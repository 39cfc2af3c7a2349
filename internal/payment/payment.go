package payment

import (
	"errors"
	"math"
	"strconv"
	"time"

	apperrors "github.com/frahmantamala/order-payment/internal"
	"github.com/frahmantamala/order-payment/internal/core/common/validation"
)

// Payment records funds applied against exactly one order. Status is
// recorded, not executed: there is no gateway call behind a create, so a
// new payment is written as SUCCESS directly.
type Payment struct {
	ID                   int64     `json:"id" gorm:"primaryKey"`
	OrderID              int64     `json:"order_id" gorm:"column:order_id;not null;uniqueIndex:uq_payments_order_id"`
	Amount               float64   `json:"amount" gorm:"column:amount;not null"`
	PaymentMethod        string    `json:"payment_method" gorm:"column:payment_method;not null"`
	Status               string    `json:"status" gorm:"column:status;not null"`
	TransactionReference *string   `json:"transaction_reference,omitempty" gorm:"column:transaction_reference"`
	PaidAt               time.Time `json:"paid_at" gorm:"column:paid_at"`
}

func (Payment) TableName() string {
	return "payments"
}

const (
	StatusPending  = "PENDING"
	StatusSuccess  = "SUCCESS"
	StatusFailed   = "FAILED"
	StatusRefunded = "REFUNDED"
)

const (
	MethodCreditCard = "CREDIT_CARD"
	MethodDebitCard  = "DEBIT_CARD"
	MethodUPI        = "UPI"
	MethodNetBanking = "NET_BANKING"
)

var PaymentMethods = []string{MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking}

// AmountTolerance is the absolute tolerance for matching a requested
// payment amount against the order total. Amounts are float64, so a direct
// equality check is unsafe.
const AmountTolerance = 0.001

// ErrDuplicatePayment is returned by the repository when an insert hits
// the uniqueness constraint on order_id.
var ErrDuplicatePayment = errors.New("payment already exists for order")

func (p *Payment) IsRefundable() bool {
	return p.Status == StatusSuccess
}

func (p *Payment) Refund() {
	p.Status = StatusRefunded
}

// CreatePaymentDTO represents the request payload for creating a payment
type CreatePaymentDTO struct {
	PaymentMethod        string   `json:"payment_method"`
	Amount               *float64 `json:"amount"`
	TransactionReference *string  `json:"transaction_reference,omitempty"`
}

func (dto CreatePaymentDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("payment_method", dto.PaymentMethod).Required().
		OneOf(PaymentMethods, apperrors.ErrCodeInvalidMethod)
	validator.Field("amount", dto.Amount).Required().Positive(apperrors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func NewPayment(orderID int64, dto CreatePaymentDTO) *Payment {
	return &Payment{
		OrderID:              orderID,
		Amount:               *dto.Amount,
		PaymentMethod:        dto.PaymentMethod,
		Status:               StatusSuccess,
		TransactionReference: dto.TransactionReference,
		PaidAt:               time.Now(),
	}
}

// amountsMatch compares a requested amount to the order total within
// AmountTolerance. A missing amount on either side never matches.
func amountsMatch(requestAmount, orderAmount *float64) bool {
	if requestAmount == nil || orderAmount == nil {
		return false
	}
	return math.Abs(*requestAmount-*orderAmount) < AmountTolerance
}

func fmtAmount(v *float64) string {
	if v == nil {
		return "null"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
