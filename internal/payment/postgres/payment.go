package postgres

import (
	"errors"

	"github.com/frahmantamala/order-payment/internal/payment"
	"gorm.io/gorm"
)

// PaymentRepository implements the payment.Repository interface using GORM
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment. A unique-index violation on order_id is
// translated to payment.ErrDuplicatePayment so callers need no gorm
// knowledge. Requires the connection to be opened with TranslateError.
func (r *PaymentRepository) Create(p *payment.Payment) error {
	err := r.db.Create(p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return payment.ErrDuplicatePayment
		}
		return err
	}
	return nil
}

// GetByOrderID returns (nil, nil) when no payment is on file for the order.
func (r *PaymentRepository) GetByOrderID(orderID int64) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Where("order_id = ?", orderID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ExistsByOrderID(orderID int64) (bool, error) {
	var count int64
	err := r.db.Model(&payment.Payment{}).Where("order_id = ?", orderID).Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepository) Save(p *payment.Payment) error {
	return r.db.Save(p).Error
}
