package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-retail-backoffice/internal/metrics"
	"go-retail-backoffice/internal/model"
	"go-retail-backoffice/internal/repository"
	"go-retail-backoffice/internal/ws"
)

type OrderService interface {
	Create(clientID uuid.UUID, status string, productIDs []uuid.UUID) (*model.Order, error)
	Get(id uuid.UUID) (*model.Order, error)
	List(filter repository.OrderFilter) ([]model.Order, error)
	Update(id uuid.UUID, status *string, productIDs []uuid.UUID) (*model.Order, error)
	Delete(id uuid.UUID) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	clientRepo  repository.ClientRepository
	wsHub       *ws.Hub
}

func NewOrderService(oRepo repository.OrderRepository, pRepo repository.ProductRepository, cRepo repository.ClientRepository, hub *ws.Hub) OrderService {
	return &orderService{
		orderRepo:   oRepo,
		productRepo: pRepo,
		clientRepo:  cRepo,
		wsHub:       hub,
	}
}

// Create places an order: every referenced product is checked for existence
// and availability first, then the order, its quantity-1 lines, and the
// per-product stock decrements commit as one unit of work. The decrement is
// conditional on stock > 0 at write time, so the whole order fails rather
// than letting stock go negative under concurrent placement.
func (s *orderService) Create(clientID uuid.UUID, status string, productIDs []uuid.UUID) (*model.Order, error) {
	if _, err := s.clientRepo.FindByID(clientID); err != nil {
		metrics.OrdersRejectedTotal.WithLabelValues("client_not_found").Inc()
		return nil, err
	}

	// Availability pre-check, in input order. Duplicate ids each become a
	// separate quantity-1 line.
	for _, pid := range productIDs {
		product, err := s.productRepo.FindByID(pid)
		if err != nil {
			metrics.OrdersRejectedTotal.WithLabelValues("product_not_found").Inc()
			return nil, fmt.Errorf("%w: %s", model.ErrProductNotFound, pid)
		}
		if product.Stock <= 0 {
			metrics.OrdersRejectedTotal.WithLabelValues("out_of_stock").Inc()
			return nil, fmt.Errorf("%w: product %s", model.ErrOutOfStock, pid)
		}
	}

	if status == "" {
		status = model.StatusPending
	}

	order := &model.Order{
		ClientID:  clientID,
		Status:    status,
		OrderDate: time.Now().UTC(),
	}
	for _, pid := range productIDs {
		order.Lines = append(order.Lines, model.OrderLine{ProductID: pid, Quantity: 1})
	}

	if err := s.orderRepo.CreateWithLines(order); err != nil {
		reason := "storage_error"
		if errors.Is(err, model.ErrOutOfStock) {
			reason = "out_of_stock"
		}
		metrics.OrdersRejectedTotal.WithLabelValues(reason).Inc()
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.StockDecrementsTotal.Add(float64(len(order.Lines)))

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent(map[string]interface{}{
			"type":       "order_created",
			"order_id":   order.ID,
			"client_id":  order.ClientID,
			"status":     order.Status,
			"line_count": len(order.Lines),
		})
	}

	return order, nil
}

func (s *orderService) Get(id uuid.UUID) (*model.Order, error) {
	return s.orderRepo.FindByID(id)
}

func (s *orderService) List(filter repository.OrderFilter) ([]model.Order, error) {
	filter.Offset, filter.Limit = clampPage(filter.Offset, filter.Limit)
	return s.orderRepo.FindAll(filter)
}

// Update replaces the status verbatim when given (any string is accepted,
// status is an opaque label) and, independently, replaces the full line set
// when productIDs is non-nil. Line replacement is a pure delete-then-insert:
// it neither re-validates stock nor adjusts stock counts. That asymmetry
// with Create is inherited behavior, kept intentionally.
func (s *orderService) Update(id uuid.UUID, status *string, productIDs []uuid.UUID) (*model.Order, error) {
	if _, err := s.orderRepo.FindByID(id); err != nil {
		return nil, err
	}

	if status != nil {
		if err := s.orderRepo.UpdateStatus(id, *status); err != nil {
			return nil, err
		}
	}
	if productIDs != nil {
		if err := s.orderRepo.ReplaceLines(id, productIDs); err != nil {
			return nil, err
		}
	}

	return s.orderRepo.FindByID(id)
}

// Delete removes the order's lines, then the order. Decremented stock is
// not restored.
func (s *orderService) Delete(id uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(id); err != nil {
		return err
	}
	return s.orderRepo.Delete(id)
}
