package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/domain"
	"github.com/example/salesapp/internal/models"
	customerrepo "github.com/example/salesapp/internal/repository/customer"
	orderrepo "github.com/example/salesapp/internal/repository/order"
	productrepo "github.com/example/salesapp/internal/repository/product"
)

// CartLine is one requested line of a new order.
type CartLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Requester identifies the authenticated caller of an order operation.
type Requester struct {
	UserID uuid.UUID
	Role   string
}

func (r Requester) isAdmin() bool {
	return r.Role == models.RoleAdmin || r.Role == models.RoleSuperAdmin
}

// OrderService builds orders from carts and drives the order/payment state
// machine. Totals are snapshotted from catalog prices at creation and never
// recomputed; transitions are committed with an optimistic version check.
type OrderService struct {
	orders    orderrepo.Repository
	products  productrepo.Repository
	customers customerrepo.Repository
	now       func() time.Time
}

// NewOrderService constructs an OrderService.
func NewOrderService(orders orderrepo.Repository, products productrepo.Repository, customers customerrepo.Repository) *OrderService {
	return &OrderService{
		orders:    orders,
		products:  products,
		customers: customers,
		now:       time.Now,
	}
}

// CreateOrder snapshots catalog prices for every cart line, computes the
// total with exact decimal arithmetic and persists the order atomically in
// (Pending, Unpaid) state. A missing product aborts the whole order.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, lines []CartLine) (*models.Order, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("customer profile: %w", domain.ErrNotFound)
		}
		return nil, err
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("order must have at least one line: %w", domain.ErrInvalidArgument)
	}

	order := &models.Order{
		CustomerID:    customer.ID,
		OrderDate:     s.now(),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}

	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero: %w", domain.ErrInvalidArgument)
		}

		product, err := s.products.GetByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("product %s: %w", line.ProductID, domain.ErrNotFound)
			}
			return nil, err
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		order.Items = append(order.Items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    line.Quantity,
			LineTotal:   lineTotal,
		})
	}

	order.TotalAmount = total

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns the order to its owner or to an administrative caller.
// Non-owners get not-found rather than forbidden, so the endpoint does not
// confirm which order ids exist.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID, req Requester) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if req.isAdmin() {
		return order, nil
	}

	customer, err := s.customers.GetByUserID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if order.CustomerID != customer.ID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

// ListMyOrders returns all orders owned by the requesting user's profile.
func (s *OrderService) ListMyOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	customer, err := s.customers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []models.Order{}, nil
		}
		return nil, err
	}
	return s.orders.ListByCustomer(ctx, customer.ID)
}

// ListAllOrders returns a page of all orders; administrative use only.
func (s *OrderService) ListAllOrders(ctx context.Context, limit, offset int) ([]models.Order, int64, error) {
	return s.orders.ListAll(ctx, limit, offset)
}

// ApplyPaymentResult feeds a gateway outcome into the state machine.
// Re-delivery of a result that matches the current terminal state is a
// no-op; any other write to a terminal order is rejected. Concurrent
// conflicting results race on the version check and exactly one wins.
func (s *OrderService) ApplyPaymentResult(ctx context.Context, orderID uuid.UUID, reference string, succeeded bool) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	incoming := models.PaymentStatusFailed
	if succeeded {
		incoming = models.PaymentStatusPaid
	}

	if order.Terminal() {
		if order.PaymentStatus == incoming && order.PaymentReference == reference {
			return order, nil
		}
		return nil, fmt.Errorf("order %s is %s: %w", orderID, order.Status, domain.ErrInvalidState)
	}

	order.PaymentStatus = incoming
	if succeeded {
		order.Status = models.OrderStatusPaid
	} else {
		order.Status = models.OrderStatusPending
	}
	order.PaymentReference = reference

	if err := s.orders.UpdateStatus(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Cancel moves the order to Cancelled. Paid orders cannot be cancelled; the
// payment status is left untouched so a cancelled order still shows its last
// known payment outcome. Cancelling an already-cancelled order succeeds.
func (s *OrderService) Cancel(ctx context.Context, orderID uuid.UUID, req Requester) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}

	if !req.isAdmin() {
		customer, err := s.customers.GetByUserID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrForbidden
			}
			return err
		}
		if order.CustomerID != customer.ID {
			return domain.ErrForbidden
		}
	}

	switch order.Status {
	case models.OrderStatusCancelled:
		return nil
	case models.OrderStatusPaid:
		return fmt.Errorf("cannot cancel a paid order: %w", domain.ErrInvalidState)
	}

	order.Status = models.OrderStatusCancelled
	return s.orders.UpdateStatus(ctx, order)
}
