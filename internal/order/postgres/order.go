package postgres

import (
	"errors"

	"github.com/frahmantamala/order-payment/internal/order"
	"gorm.io/gorm"
)

// OrderRepository implements the order.Repository interface using GORM
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *order.Order) error {
	return r.db.Create(o).Error
}

// GetByID returns (nil, nil) when the order does not exist.
func (r *OrderRepository) GetByID(id int64) (*order.Order, error) {
	var o order.Order
	err := r.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetAll(limit, offset int) ([]*order.Order, error) {
	var orders []*order.Order
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) Save(o *order.Order) error {
	return r.db.Save(o).Error
}

func (r *OrderRepository) Delete(id int64) error {
	return r.db.Delete(&order.Order{}, id).Error
}
