package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderItemNotFound = errors.New("order item not found")
)

// DefaultOrderStatus is assigned when the caller submits no status.
const DefaultOrderStatus = "Pending"

type Order struct {
	ID               uuid.UUID
	ItemIDs          []uuid.UUID
	ShippingAddress1 string
	ShippingAddress2 string
	City             string
	Zip              string
	Country          string
	Phone            string
	Status           string
	TotalPrice       decimal.Decimal
	UserID           uuid.UUID
	DateOrdered      time.Time
}

type OrderItem struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// PricedItem is an order item joined to its current product price.
type PricedItem struct {
	Item  OrderItem
	Price decimal.Decimal
}

// OrderSummary is the list view of an order with the owning user's
// display name resolved.
type OrderSummary struct {
	Order    Order
	UserName string
}

// ExpandedItem is an order item with its product and the product's
// category fully resolved.
type ExpandedItem struct {
	Item     OrderItem
	Product  Product
	Category Category
}

// ExpandedOrder is the detail view: items, products and categories
// expanded three levels deep, in submission order.
type ExpandedOrder struct {
	Order Order
	Items []ExpandedItem
}

type OrderRepository interface {
	NextID() (uuid.UUID, error)
	Create(order *Order) error
	Find(id uuid.UUID) (*Order, error)
	FindExpanded(id uuid.UUID) (*ExpandedOrder, error)
	ListAll() ([]OrderSummary, error)
	ListByUser(userID uuid.UUID) ([]*ExpandedOrder, error)
	UpdateStatus(id uuid.UUID, status string) error
	Delete(id uuid.UUID) error
	TotalSales() (decimal.Decimal, error)
	Count() (int, error)
}

type OrderItemRepository interface {
	NextID() (uuid.UUID, error)
	Create(item *OrderItem) error
	FindPriced(id uuid.UUID) (*PricedItem, error)
	Delete(id uuid.UUID) error
}
