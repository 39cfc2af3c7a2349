package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	apperrors "github.com/frahmantamala/order-payment/internal"
	"github.com/frahmantamala/order-payment/internal/core/events"
	"github.com/frahmantamala/order-payment/internal/order"
)

// Repository interface for payment database operations. Lookups return
// (nil, nil) when no payment is on file; the service decides whether
// absence is an error.
type Repository interface {
	Create(p *Payment) error
	GetByOrderID(orderID int64) (*Payment, error)
	ExistsByOrderID(orderID int64) (bool, error)
	Save(p *Payment) error
}

// OrderRepository is the slice of the order store the coordinator needs.
type OrderRepository interface {
	GetByID(id int64) (*order.Order, error)
	Save(o *order.Order) error
}

// TxManager runs a function against transaction-scoped repositories with
// all-or-nothing commit.
type TxManager interface {
	WithinTransaction(fn func(orders OrderRepository, payments Repository) error) error
}

// Service coordinates the order/payment state transitions. It is stateless
// between calls apart from the per-order locks that serialize concurrent
// create/refund attempts for the same order.
type Service struct {
	tx       TxManager
	orders   OrderRepository
	payments Repository
	bus      *events.EventBus
	logger   *slog.Logger

	mu         sync.Mutex
	orderLocks map[int64]*sync.Mutex
}

func NewService(tx TxManager, orders OrderRepository, payments Repository, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		tx:         tx,
		orders:     orders,
		payments:   payments,
		bus:        bus,
		logger:     logger,
		orderLocks: make(map[int64]*sync.Mutex),
	}
}

// CreatePayment records a payment against an order. Validation order:
// order exists, order is PLACED, no payment exists yet, amount matches the
// order total within AmountTolerance. The existence check and the insert
// run in one transaction; the unique index on order_id is the backstop.
func (s *Service) CreatePayment(orderID int64, dto CreatePaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("payment request validation failed", "error", err, "order_id", orderID)
		return nil, err
	}

	lock := s.lockForOrder(orderID)
	lock.Lock()
	defer lock.Unlock()

	var created *Payment
	err := s.tx.WithinTransaction(func(orders OrderRepository, payments Repository) error {
		o, err := orders.GetByID(orderID)
		if err != nil {
			return apperrors.NewInternalError("failed to load order", err)
		}
		if o == nil {
			return apperrors.NewNotFoundError(fmt.Sprintf("order %d not found", orderID), apperrors.ErrCodeOrderNotFound)
		}

		if !o.IsPlaceable() {
			return apperrors.NewValidationError(
				fmt.Sprintf("order %d is not in PLACED status. Current status: %s", orderID, o.Status),
				apperrors.ErrCodeOrderNotPlaceable)
		}

		exists, err := payments.ExistsByOrderID(orderID)
		if err != nil {
			return apperrors.NewInternalError("failed to check existing payment", err)
		}
		if exists {
			return apperrors.NewConflictError(
				fmt.Sprintf("payment already exists for order %d", orderID),
				apperrors.ErrCodePaymentExists)
		}

		if !amountsMatch(dto.Amount, o.TotalAmount) {
			return apperrors.NewValidationError(
				fmt.Sprintf("payment amount %s does not match order total %s", fmtAmount(dto.Amount), fmtAmount(o.TotalAmount)),
				apperrors.ErrCodeAmountMismatch)
		}

		created = NewPayment(orderID, dto)
		if err := payments.Create(created); err != nil {
			if errors.Is(err, ErrDuplicatePayment) {
				return apperrors.NewConflictError(
					fmt.Sprintf("payment already exists for order %d", orderID),
					apperrors.ErrCodePaymentExists)
			}
			return apperrors.NewInternalError("failed to persist payment", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("create payment rejected", "error", err, "order_id", orderID)
		return nil, err
	}

	s.logger.Info("payment created",
		"payment_id", created.ID,
		"order_id", orderID,
		"amount", created.Amount,
		"payment_method", created.PaymentMethod,
		"status", created.Status)

	s.publish(events.NewPaymentCreatedEvent(created.ID, orderID, created.Amount, created.PaymentMethod))

	return created, nil
}

// GetPayment returns the current payment for an order, or (nil, nil) when
// the order exists but has no payment on file.
func (s *Service) GetPayment(orderID int64) (*Payment, error) {
	o, err := s.orders.GetByID(orderID)
	if err != nil {
		s.logger.Error("failed to load order", "error", err, "order_id", orderID)
		return nil, apperrors.NewInternalError("failed to load order", err)
	}
	if o == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %d not found", orderID), apperrors.ErrCodeOrderNotFound)
	}

	p, err := s.payments.GetByOrderID(orderID)
	if err != nil {
		s.logger.Error("failed to load payment", "error", err, "order_id", orderID)
		return nil, apperrors.NewInternalError("failed to load payment", err)
	}
	return p, nil
}

// RefundPayment reverses a successful payment: the payment moves to
// REFUNDED and the order to CANCELLED, committed as one unit of work.
func (s *Service) RefundPayment(orderID int64) (*Payment, error) {
	lock := s.lockForOrder(orderID)
	lock.Lock()
	defer lock.Unlock()

	var refunded *Payment
	err := s.tx.WithinTransaction(func(orders OrderRepository, payments Repository) error {
		o, err := orders.GetByID(orderID)
		if err != nil {
			return apperrors.NewInternalError("failed to load order", err)
		}
		if o == nil {
			return apperrors.NewNotFoundError(fmt.Sprintf("order %d not found", orderID), apperrors.ErrCodeNotFound)
		}

		p, err := payments.GetByOrderID(orderID)
		if err != nil {
			return apperrors.NewInternalError("failed to load payment", err)
		}
		if p == nil {
			return apperrors.NewNotFoundError(fmt.Sprintf("no payment found for order %d", orderID), apperrors.ErrCodeNotFound)
		}

		if !p.IsRefundable() {
			return apperrors.NewValidationError(
				fmt.Sprintf("payment cannot be refunded. Current status: %s", p.Status),
				apperrors.ErrCodePaymentNotRefundable)
		}

		p.Refund()
		o.Cancel()

		if err := orders.Save(o); err != nil {
			return apperrors.NewInternalError("failed to persist order", err)
		}
		if err := payments.Save(p); err != nil {
			return apperrors.NewInternalError("failed to persist payment", err)
		}

		refunded = p
		return nil
	})
	if err != nil {
		s.logger.Warn("refund rejected", "error", err, "order_id", orderID)
		return nil, err
	}

	s.logger.Info("payment refunded",
		"payment_id", refunded.ID,
		"order_id", orderID,
		"amount", refunded.Amount)

	s.publish(events.NewPaymentRefundedEvent(refunded.ID, orderID, refunded.Amount))

	return refunded, nil
}

func (s *Service) publish(event events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(context.Background(), event)
}

func (s *Service) lockForOrder(orderID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.orderLocks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		s.orderLocks[orderID] = lock
	}
	return lock
}
