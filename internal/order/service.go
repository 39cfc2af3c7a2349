package order

import (
	"fmt"
	"log/slog"

	errors "github.com/frahmantamala/order-payment/internal"
)

// Repository interface defines the data access methods for orders.
// Lookups return (nil, nil) when no row exists; the service decides
// whether absence is an error.
type Repository interface {
	Create(o *Order) error
	GetByID(id int64) (*Order, error)
	GetAll(limit, offset int) ([]*Order, error)
	Save(o *Order) error
	Delete(id int64) error
}

// Service handles order management logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateOrder creates a new order in PLACED status
func (s *Service) CreateOrder(dto CreateOrderDTO) (*Order, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("order validation failed", "error", err)
		return nil, err
	}

	o := NewOrder(dto)
	if err := s.repo.Create(o); err != nil {
		s.logger.Error("failed to create order", "error", err)
		return nil, errors.NewInternalError("failed to create order", err)
	}

	s.logger.Info("order created",
		"order_id", o.ID,
		"total_amount", dto.TotalAmount,
		"status", o.Status)

	return o, nil
}

func (s *Service) GetAllOrders(limit, offset int) ([]*Order, error) {
	orders, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list orders", "error", err)
		return nil, errors.NewInternalError("failed to list orders", err)
	}
	return orders, nil
}

func (s *Service) GetOrderByID(id int64) (*Order, error) {
	o, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get order", "error", err, "order_id", id)
		return nil, errors.NewInternalError("failed to get order", err)
	}
	if o == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order %d not found", id), errors.ErrCodeOrderNotFound)
	}
	return o, nil
}

// UpdateOrder replaces the mutable fields of an existing order
func (s *Service) UpdateOrder(id int64, dto UpdateOrderDTO) (*Order, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("order update validation failed", "error", err, "order_id", id)
		return nil, err
	}

	o, err := s.GetOrderByID(id)
	if err != nil {
		return nil, err
	}

	o.CustomerName = dto.CustomerName
	o.Items = dto.Items
	o.TotalAmount = dto.TotalAmount
	o.Status = dto.Status

	if err := s.repo.Save(o); err != nil {
		s.logger.Error("failed to update order", "error", err, "order_id", id)
		return nil, errors.NewInternalError("failed to update order", err)
	}

	s.logger.Info("order updated", "order_id", id, "status", o.Status)
	return o, nil
}

func (s *Service) DeleteOrder(id int64) error {
	if _, err := s.GetOrderByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete order", "error", err, "order_id", id)
		return errors.NewInternalError("failed to delete order", err)
	}

	s.logger.Info("order deleted", "order_id", id)
	return nil
}
