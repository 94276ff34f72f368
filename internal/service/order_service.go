package service

import (
	"context"
	"strings"

	"github.com/grocer-next/internal/constants"
	"github.com/grocer-next/internal/logger"
	"github.com/grocer-next/internal/models"
	"github.com/grocer-next/internal/queue"
	"github.com/grocer-next/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderService turns a persisted cart into orders and manages their
// lifecycle. Payment is recorded from the checkout form, never charged.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartService *CartService
	queueClient *queue.Client
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartService *CartService, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartService: cartService,
		queueClient: queueClient,
	}
}

// CheckoutInput carries the checkout form.
type CheckoutInput struct {
	DeliveryAddress string
	PaymentMethod   string
}

var validPaymentMethods = map[string]struct{}{
	constants.PaymentMethodCashOnDelivery: {},
	constants.PaymentMethodBankTransfer:   {},
}

var validOrderStatuses = map[string]struct{}{
	constants.OrderStatusPending:    {},
	constants.OrderStatusProcessing: {},
	constants.OrderStatusCompleted:  {},
	constants.OrderStatusCancelled:  {},
}

// Checkout freezes the cart into an order. Line prices are the cart's
// snapshot prices under its pricing mode at this moment; the cart is
// emptied once the order exists.
func (s *OrderService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		return nil, ErrInvalidInput
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if _, ok := validPaymentMethods[method]; !ok {
		return nil, ErrInvalidInput
	}

	c, err := s.cartService.loadCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	lines := c.Items()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	wholesale := c.Wholesale()
	order := &models.Order{
		OrderNo:         uuid.NewString(),
		UserID:          userID,
		Status:          constants.OrderStatusPending,
		TotalPrice:      c.Total(),
		Wholesale:       wholesale,
		DeliveryAddress: address,
		PaymentMethod:   method,
	}
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := models.OrderItem{
			ProductID:   line.Product.ProductID,
			ProductName: line.Product.Name,
			Unit:        line.Product.Unit,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice(wholesale),
		}
		if line.Variant != nil {
			variantID := line.Variant.VariantID
			item.VariantID = &variantID
			item.VariantName = line.Variant.Name
		}
		items = append(items, item)
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		txOrders := s.orderRepo.WithTx(tx)
		txProducts := s.productRepo.WithTx(tx)
		for _, item := range items {
			affected, err := txProducts.AdjustStock(item.ProductID, -item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrProductNotAvailable
			}
		}
		return txOrders.Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	if err := s.cartService.clearAfterCheckout(ctx, userID); err != nil {
		logger.Warnw("cart_clear_after_checkout_failed",
			"user_id", userID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}

	s.enqueueStatusEmail(order.ID, order.Status)
	return s.orderRepo.GetByID(order.ID)
}

// GetForUser returns one of the user's orders.
func (s *OrderService) GetForUser(userID, orderID uint) (*models.Order, error) {
	if userID == 0 || orderID == 0 {
		return nil, ErrInvalidInput
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListForUser pages through the user's orders.
func (s *OrderService) ListForUser(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrInvalidInput
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

// ListAdmin pages through all orders.
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetAdmin returns any order.
func (s *OrderService) GetAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus moves an order to a new status and queues the customer
// notification. Terminal orders stay put.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	normalized := strings.ToLower(strings.TrimSpace(status))
	if _, ok := validOrderStatuses[normalized]; !ok {
		return nil, ErrInvalidStatus
	}
	order, err := s.GetAdmin(orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == constants.OrderStatusCompleted || order.Status == constants.OrderStatusCancelled {
		return nil, ErrInvalidStatus
	}
	if order.Status == normalized {
		return order, nil
	}
	if err := s.orderRepo.UpdateStatus(orderID, normalized); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(orderID, normalized)
	return s.GetAdmin(orderID)
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed",
			"order_id", orderID,
			"status", status,
			"error", err,
		)
	}
}
