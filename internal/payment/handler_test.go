package payment_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/order-payment/internal"
	"github.com/frahmantamala/order-payment/internal/payment"
)

type mockPaymentService struct {
	createFunc func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error)
	getFunc    func(orderID int64) (*payment.Payment, error)
	refundFunc func(orderID int64) (*payment.Payment, error)
}

func (m *mockPaymentService) CreatePayment(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
	return m.createFunc(orderID, dto)
}

func (m *mockPaymentService) GetPayment(orderID int64) (*payment.Payment, error) {
	return m.getFunc(orderID)
}

func (m *mockPaymentService) RefundPayment(orderID int64) (*payment.Payment, error) {
	return m.refundFunc(orderID)
}

var _ = Describe("PaymentHandler", func() {
	var (
		service *mockPaymentService
		router  *chi.Mux
	)

	newRouter := func() *chi.Mux {
		handler := payment.NewHandler(service)
		r := chi.NewRouter()
		r.Route("/orders/{orderId}/payments", func(r chi.Router) {
			r.Post("/", handler.CreatePayment)
			r.Get("/", handler.GetPayment)
			r.Post("/refund", handler.RefundPayment)
		})
		return r
	}

	decodeErrorCode := func(body *bytes.Buffer) string {
		var resp struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		err := json.Unmarshal(body.Bytes(), &resp)
		Expect(err).ToNot(HaveOccurred())
		return resp.Error.Code
	}

	samplePayment := func() *payment.Payment {
		return &payment.Payment{
			ID:            7,
			OrderID:       1,
			Amount:        500.00,
			PaymentMethod: payment.MethodCreditCard,
			Status:        payment.StatusSuccess,
		}
	}

	BeforeEach(func() {
		service = &mockPaymentService{}
	})

	Describe("POST /orders/{orderId}/payments", func() {
		Context("when the payment is accepted", func() {
			It("should respond 201 with the payment", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					Expect(orderID).To(Equal(int64(1)))
					Expect(dto.PaymentMethod).To(Equal(payment.MethodCreditCard))
					return samplePayment(), nil
				}
				router = newRouter()

				body := []byte(`{"payment_method":"CREDIT_CARD","amount":500.00}`)
				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments", bytes.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusCreated))

				var got payment.Payment
				Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
				Expect(got.ID).To(Equal(int64(7)))
				Expect(got.Status).To(Equal(payment.StatusSuccess))
			})
		})

		Context("when the order does not exist", func() {
			It("should respond 404 with ORDER_NOT_FOUND", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					return nil, internal.NewNotFoundError(fmt.Sprintf("order %d not found", orderID), internal.ErrCodeOrderNotFound)
				}
				router = newRouter()

				body := []byte(`{"payment_method":"CREDIT_CARD","amount":500.00}`)
				req := httptest.NewRequest(http.MethodPost, "/orders/9999/payments", bytes.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusNotFound))
				Expect(decodeErrorCode(rec.Body)).To(Equal("ORDER_NOT_FOUND"))
			})
		})

		Context("when a payment already exists", func() {
			It("should respond 409 with PAYMENT_EXISTS", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					return nil, internal.NewConflictError("payment already exists for order 1", internal.ErrCodePaymentExists)
				}
				router = newRouter()

				body := []byte(`{"payment_method":"CREDIT_CARD","amount":500.00}`)
				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments", bytes.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusConflict))
				Expect(decodeErrorCode(rec.Body)).To(Equal("PAYMENT_EXISTS"))
			})
		})

		Context("when the order is not placeable", func() {
			It("should respond 400 with ORDER_NOT_PLACEABLE", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					return nil, internal.NewValidationError("order 1 is not in PLACED status. Current status: SHIPPED", internal.ErrCodeOrderNotPlaceable)
				}
				router = newRouter()

				body := []byte(`{"payment_method":"CREDIT_CARD","amount":500.00}`)
				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments", bytes.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(decodeErrorCode(rec.Body)).To(Equal("ORDER_NOT_PLACEABLE"))
			})
		})

		Context("when the amount does not match", func() {
			It("should respond 400 with AMOUNT_MISMATCH", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					return nil, internal.NewValidationError("payment amount 100 does not match order total 500", internal.ErrCodeAmountMismatch)
				}
				router = newRouter()

				body := []byte(`{"payment_method":"CREDIT_CARD","amount":100.00}`)
				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments", bytes.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(decodeErrorCode(rec.Body)).To(Equal("AMOUNT_MISMATCH"))
			})
		})

		Context("when the body is not valid JSON", func() {
			It("should respond 400", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					Fail("service should not be called")
					return nil, nil
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments", bytes.NewReader([]byte(`{not json`)))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})

		Context("when the order ID is not numeric", func() {
			It("should respond 400", func() {
				service.createFunc = func(orderID int64, dto payment.CreatePaymentDTO) (*payment.Payment, error) {
					Fail("service should not be called")
					return nil, nil
				}
				router = newRouter()

				body := []byte(`{"payment_method":"CREDIT_CARD","amount":500.00}`)
				req := httptest.NewRequest(http.MethodPost, "/orders/abc/payments", bytes.NewReader(body))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("GET /orders/{orderId}/payments", func() {
		Context("when a payment exists", func() {
			It("should respond 200 with the payment", func() {
				service.getFunc = func(orderID int64) (*payment.Payment, error) {
					return samplePayment(), nil
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodGet, "/orders/1/payments", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))

				var got payment.Payment
				Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
				Expect(got.OrderID).To(Equal(int64(1)))
			})
		})

		Context("when the order has no payment on file", func() {
			It("should respond 404 without a body", func() {
				service.getFunc = func(orderID int64) (*payment.Payment, error) {
					return nil, nil
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodGet, "/orders/1/payments", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusNotFound))
				Expect(rec.Body.Len()).To(BeZero())
			})
		})

		Context("when the order does not exist", func() {
			It("should respond 404 with ORDER_NOT_FOUND", func() {
				service.getFunc = func(orderID int64) (*payment.Payment, error) {
					return nil, internal.NewNotFoundError("order 9999 not found", internal.ErrCodeOrderNotFound)
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodGet, "/orders/9999/payments", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusNotFound))
				Expect(decodeErrorCode(rec.Body)).To(Equal("ORDER_NOT_FOUND"))
			})
		})
	})

	Describe("POST /orders/{orderId}/payments/refund", func() {
		Context("when the refund succeeds", func() {
			It("should respond 200 with the refunded payment", func() {
				service.refundFunc = func(orderID int64) (*payment.Payment, error) {
					p := samplePayment()
					p.Status = payment.StatusRefunded
					return p, nil
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments/refund", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))

				var got payment.Payment
				Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
				Expect(got.Status).To(Equal(payment.StatusRefunded))
			})
		})

		Context("when no payment exists", func() {
			It("should respond 404 with NOT_FOUND", func() {
				service.refundFunc = func(orderID int64) (*payment.Payment, error) {
					return nil, internal.NewNotFoundError("no payment found for order 1", internal.ErrCodeNotFound)
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments/refund", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusNotFound))
				Expect(decodeErrorCode(rec.Body)).To(Equal("NOT_FOUND"))
			})
		})

		Context("when the payment is not refundable", func() {
			It("should respond 400 with PAYMENT_NOT_REFUNDABLE", func() {
				service.refundFunc = func(orderID int64) (*payment.Payment, error) {
					return nil, internal.NewValidationError("payment cannot be refunded. Current status: REFUNDED", internal.ErrCodePaymentNotRefundable)
				}
				router = newRouter()

				req := httptest.NewRequest(http.MethodPost, "/orders/1/payments/refund", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
				Expect(decodeErrorCode(rec.Body)).To(Equal("PAYMENT_NOT_REFUNDABLE"))
			})
		})
	})
})
