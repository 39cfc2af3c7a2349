package postgres

import (
	orderpg "github.com/frahmantamala/order-payment/internal/order/postgres"
	"github.com/frahmantamala/order-payment/internal/payment"
	"gorm.io/gorm"
)

// TxManager implements payment.TxManager on a single *gorm.DB. Each call
// opens one database transaction and hands the callback repositories bound
// to it, so the existence checks and writes inside commit or roll back as
// a unit.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTransaction(fn func(orders payment.OrderRepository, payments payment.Repository) error) error {
	return m.db.Transaction(func(tx *gorm.DB) error {
		return fn(orderpg.NewOrderRepository(tx), NewPaymentRepository(tx))
	})
}
