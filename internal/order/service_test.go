package order_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/order-payment/internal"
	"github.com/frahmantamala/order-payment/internal/order"
)

func TestOrderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Service Suite")
}

type mockOrderRepository struct {
	orders      map[int64]*order.Order
	nextID      int64
	createError error
	getError    error
	saveError   error
	deleteError error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[int64]*order.Order), nextID: 1}
}

func (m *mockOrderRepository) Create(o *order.Order) error {
	if m.createError != nil {
		return m.createError
	}
	o.ID = m.nextID
	m.nextID++
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepository) GetByID(id int64) (*order.Order, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	o, exists := m.orders[id]
	if !exists {
		return nil, nil
	}
	return o, nil
}

func (m *mockOrderRepository) GetAll(limit, offset int) ([]*order.Order, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	all := make([]*order.Order, 0, len(m.orders))
	for id := int64(1); id < m.nextID; id++ {
		if o, exists := m.orders[id]; exists {
			all = append(all, o)
		}
	}
	if offset >= len(all) {
		return []*order.Order{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *mockOrderRepository) Save(o *order.Order) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepository) Delete(id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	delete(m.orders, id)
	return nil
}

func amountPtr(v float64) *float64 {
	return &v
}

var _ = Describe("OrderService", func() {
	var (
		service *order.Service
		repo    *mockOrderRepository
	)

	validCreate := func() order.CreateOrderDTO {
		return order.CreateOrderDTO{
			CustomerName: "Fadhil",
			Items:        "2x usb-c cable",
			TotalAmount:  amountPtr(150.00),
		}
	}

	BeforeEach(func() {
		repo = newMockOrderRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = order.NewService(repo, logger)
	})

	Describe("CreateOrder", func() {
		Context("with a valid payload", func() {
			It("should create the order in PLACED status", func() {
				result, err := service.CreateOrder(validCreate())

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ID).To(BeNumerically(">", 0))
				Expect(result.Status).To(Equal(order.StatusPlaced))
				Expect(result.CustomerName).To(Equal("Fadhil"))
				Expect(*result.TotalAmount).To(Equal(150.00))
				Expect(result.CreatedAt).ToNot(BeZero())
			})
		})

		Context("with an invalid payload", func() {
			It("should reject a missing customer name", func() {
				dto := validCreate()
				dto.CustomerName = ""

				result, err := service.CreateOrder(dto)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("customer_name is required"))
				Expect(result).To(BeNil())
			})

			It("should reject a missing total amount", func() {
				dto := validCreate()
				dto.TotalAmount = nil

				_, err := service.CreateOrder(dto)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("total_amount is required"))
			})

			It("should reject a non-positive total amount", func() {
				dto := validCreate()
				dto.TotalAmount = amountPtr(0)

				_, err := service.CreateOrder(dto)

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("total_amount must be positive"))
			})
		})

		Context("when the repository fails", func() {
			It("should return an internal error", func() {
				repo.createError = errors.New("connection refused")

				result, err := service.CreateOrder(validCreate())

				Expect(err).To(HaveOccurred())
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("GetOrderByID", func() {
		Context("when the order exists", func() {
			It("should return it", func() {
				created, err := service.CreateOrder(validCreate())
				Expect(err).ToNot(HaveOccurred())

				result, err := service.GetOrderByID(created.ID)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ID).To(Equal(created.ID))
			})
		})

		Context("when the order does not exist", func() {
			It("should fail with ORDER_NOT_FOUND", func() {
				result, err := service.GetOrderByID(9999)

				Expect(err).To(HaveOccurred())
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeOrderNotFound))
				Expect(appErr.StatusCode).To(Equal(404))
				Expect(result).To(BeNil())
			})
		})
	})

	Describe("GetAllOrders", func() {
		BeforeEach(func() {
			for i := 0; i < 5; i++ {
				_, err := service.CreateOrder(validCreate())
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("should page through the orders", func() {
			page, err := service.GetAllOrders(2, 0)
			Expect(err).ToNot(HaveOccurred())
			Expect(page).To(HaveLen(2))

			rest, err := service.GetAllOrders(10, 4)
			Expect(err).ToNot(HaveOccurred())
			Expect(rest).To(HaveLen(1))
		})

		It("should return an empty page past the end", func() {
			page, err := service.GetAllOrders(10, 100)
			Expect(err).ToNot(HaveOccurred())
			Expect(page).To(BeEmpty())
		})
	})

	Describe("UpdateOrder", func() {
		var existing *order.Order

		BeforeEach(func() {
			var err error
			existing, err = service.CreateOrder(validCreate())
			Expect(err).ToNot(HaveOccurred())
		})

		Context("with a valid payload", func() {
			It("should replace the mutable fields", func() {
				result, err := service.UpdateOrder(existing.ID, order.UpdateOrderDTO{
					CustomerName: "Fadhil R",
					Items:        "3x usb-c cable",
					TotalAmount:  amountPtr(225.00),
					Status:       order.StatusShipped,
				})

				Expect(err).ToNot(HaveOccurred())
				Expect(result.CustomerName).To(Equal("Fadhil R"))
				Expect(*result.TotalAmount).To(Equal(225.00))
				Expect(result.Status).To(Equal(order.StatusShipped))
			})
		})

		Context("with an unknown status", func() {
			It("should reject the update", func() {
				_, err := service.UpdateOrder(existing.ID, order.UpdateOrderDTO{
					CustomerName: "Fadhil R",
					Items:        "3x usb-c cable",
					TotalAmount:  amountPtr(225.00),
					Status:       "ARCHIVED",
				})

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("status"))
			})
		})

		Context("when the order does not exist", func() {
			It("should fail with ORDER_NOT_FOUND", func() {
				_, err := service.UpdateOrder(9999, order.UpdateOrderDTO{
					CustomerName: "Nobody",
					Items:        "nothing",
					TotalAmount:  amountPtr(1.00),
					Status:       order.StatusPlaced,
				})

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeOrderNotFound))
			})
		})
	})

	Describe("DeleteOrder", func() {
		Context("when the order exists", func() {
			It("should remove it", func() {
				created, err := service.CreateOrder(validCreate())
				Expect(err).ToNot(HaveOccurred())

				Expect(service.DeleteOrder(created.ID)).To(Succeed())

				_, err = service.GetOrderByID(created.ID)
				Expect(err).To(HaveOccurred())
			})
		})

		Context("when the order does not exist", func() {
			It("should fail with ORDER_NOT_FOUND", func() {
				err := service.DeleteOrder(9999)

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeOrderNotFound))
			})
		})
	})
})
