package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type Product struct {
	ID              uuid.UUID
	Name            string
	Description     string
	RichDescription string
	Image           string
	Images          []string
	Brand           string
	Price           decimal.Decimal
	CategoryID      uuid.UUID
	CountInStock    int
	Rating          float64
	NumReviews      int
	IsFeatured      bool
	DateCreated     time.Time
}

type ProductRepository interface {
	NextID() (uuid.UUID, error)
	Create(product *Product) error
	Find(id uuid.UUID) (*Product, error)
	// List returns products, optionally filtered by category. An empty
	// filter returns the whole catalog.
	List(categoryIDs []uuid.UUID) ([]*Product, error)
	ListFeatured(limit int) ([]*Product, error)
	Update(product *Product) error
	UpdateGallery(id uuid.UUID, images []string) error
	Delete(id uuid.UUID) error
	Count() (int, error)
}
