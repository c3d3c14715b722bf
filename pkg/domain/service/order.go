package service

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"catalog/pkg/domain/model"
)

var (
	ErrOrderIsEmpty     = errors.New("cannot process an empty order")
	ErrInvalidQuantity  = errors.New("item quantity must be a positive integer")
	ErrEmptyOrderStatus = errors.New("order status cannot be empty")
)

type NewOrderItem struct {
	ProductID uuid.UUID
	Quantity  int
}

type NewOrder struct {
	Items            []NewOrderItem
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	UserID           uuid.UUID
}

type OrderService interface {
	PlaceOrder(input NewOrder) (*model.Order, error)
	GetOrder(id uuid.UUID) (*model.ExpandedOrder, error)
	ListOrders() ([]model.OrderSummary, error)
	ListUserOrders(userID uuid.UUID) ([]*model.ExpandedOrder, error)
	UpdateStatus(id uuid.UUID, status string) (*model.Order, error)
	// DeleteOrder reports whether an order was deleted; a missing order
	// is a regular outcome, not an error.
	DeleteOrder(id uuid.UUID) (bool, error)
	TotalSales() (decimal.Decimal, error)
	CountOrders() (int, error)
}

func NewOrderService(orders model.OrderRepository, items model.OrderItemRepository) OrderService {
	return &orderService{orders: orders, items: items}
}

type orderService struct {
	orders model.OrderRepository
	items  model.OrderItemRepository
}

// PlaceOrder runs the creation pipeline: materialize the order items,
// price them against the current catalog, then persist the parent
// order. Each stage completes fully before the next starts. If a later
// stage fails, items inserted by the first stage are cleaned up so a
// failed request leaves nothing behind.
func (s *orderService) PlaceOrder(input NewOrder) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderIsEmpty
	}
	for _, item := range input.Items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	itemIDs, err := s.materializeItems(input.Items)
	if err != nil {
		s.cleanupItems(itemIDs)
		return nil, err
	}

	total, err := s.calculateTotal(itemIDs)
	if err != nil {
		s.cleanupItems(itemIDs)
		return nil, err
	}

	order, err := s.assembleOrder(input, itemIDs, total)
	if err != nil {
		s.cleanupItems(itemIDs)
		return nil, err
	}
	return order, nil
}

// materializeItems persists one order item per input pair. Inserts are
// independent and run concurrently; the returned ids keep the input
// order. Product references are not checked here, the pricing stage
// resolves them.
func (s *orderService) materializeItems(items []NewOrderItem) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(items))
	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			id, err := s.items.NextID()
			if err != nil {
				return err
			}
			if err := s.items.Create(&model.OrderItem{
				ID:        id,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}); err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ids, err
	}
	return ids, nil
}

// calculateTotal joins every materialized item to its product and sums
// price times quantity. Reads run concurrently; the sum itself is a
// stable left-to-right reduction from zero so the result is
// deterministic for a given input order.
func (s *orderService) calculateTotal(itemIDs []uuid.UUID) (decimal.Decimal, error) {
	priced := make([]*model.PricedItem, len(itemIDs))
	var g errgroup.Group
	for i, id := range itemIDs {
		g.Go(func() error {
			item, err := s.items.FindPriced(id)
			if err != nil {
				return err
			}
			priced[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range priced {
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Item.Quantity))))
	}
	return total, nil
}

func (s *orderService) assembleOrder(input NewOrder, itemIDs []uuid.UUID, total decimal.Decimal) (*model.Order, error) {
	id, err := s.orders.NextID()
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.DefaultOrderStatus
	}

	order := &model.Order{
		ID:               id,
		ItemIDs:          itemIDs,
		ShippingAddress1: input.ShippingAddress1,
		ShippingAddress2: input.ShippingAddress2,
		City:             input.City,
		Zip:              input.Zip,
		Country:          input.Country,
		Phone:            input.Phone,
		Status:           status,
		TotalPrice:       total,
		UserID:           input.UserID,
		DateOrdered:      time.Now().UTC(),
	}
	if err := s.orders.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

// cleanupItems removes items materialized by a creation attempt that
// failed later in the pipeline. A concurrent insert may have failed
// before assigning its slot, so zero ids are skipped.
func (s *orderService) cleanupItems(itemIDs []uuid.UUID) {
	for _, id := range itemIDs {
		if id == uuid.Nil {
			continue
		}
		if err := s.items.Delete(id); err != nil && !errors.Is(err, model.ErrOrderItemNotFound) {
			log.WithError(err).WithField("itemId", id).Warn("failed to clean up order item")
		}
	}
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.ExpandedOrder, error) {
	return s.orders.FindExpanded(id)
}

func (s *orderService) ListOrders() ([]model.OrderSummary, error) {
	return s.orders.ListAll()
}

func (s *orderService) ListUserOrders(userID uuid.UUID) ([]*model.ExpandedOrder, error) {
	return s.orders.ListByUser(userID)
}

func (s *orderService) UpdateStatus(id uuid.UUID, status string) (*model.Order, error) {
	if status == "" {
		return nil, ErrEmptyOrderStatus
	}
	if err := s.orders.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	return s.orders.Find(id)
}

// DeleteOrder removes the order and then every item it referenced. The
// item removals are independent of one another; a failure is logged and
// does not undo the rest of the cascade.
func (s *orderService) DeleteOrder(id uuid.UUID) (bool, error) {
	order, err := s.orders.Find(id)
	if errors.Is(err, model.ErrOrderNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.orders.Delete(id); err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return false, nil
		}
		return false, err
	}

	var wg sync.WaitGroup
	for _, itemID := range order.ItemIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.items.Delete(itemID); err != nil && !errors.Is(err, model.ErrOrderItemNotFound) {
				log.WithError(err).WithField("itemId", itemID).Warn("failed to delete order item")
			}
		}()
	}
	wg.Wait()
	return true, nil
}

func (s *orderService) TotalSales() (decimal.Decimal, error) {
	return s.orders.TotalSales()
}

func (s *orderService) CountOrders() (int, error) {
	return s.orders.Count()
}
