package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
)

var (
	ErrEmptyProductName = errors.New("product name cannot be empty")
	ErrNegativePrice    = errors.New("product price cannot be negative")
)

type ProductInput struct {
	Name            string
	Description     string
	RichDescription string
	Image           string
	Brand           string
	Price           decimal.Decimal
	CategoryID      uuid.UUID
	CountInStock    int
	Rating          float64
	NumReviews      int
	IsFeatured      bool
}

type ProductService interface {
	CreateProduct(input ProductInput) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(categoryIDs []uuid.UUID) ([]*model.Product, error)
	ListFeatured(limit int) ([]*model.Product, error)
	UpdateProduct(id uuid.UUID, input ProductInput) (*model.Product, error)
	UpdateGallery(id uuid.UUID, images []string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	CountProducts() (int, error)
}

func NewProductService(products model.ProductRepository, categories model.CategoryRepository) ProductService {
	return &productService{products: products, categories: categories}
}

type productService struct {
	products   model.ProductRepository
	categories model.CategoryRepository
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	// A product must reference an existing category.
	if _, err := s.categories.Find(input.CategoryID); err != nil {
		return nil, err
	}

	id, err := s.products.NextID()
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:              id,
		Name:            input.Name,
		Description:     input.Description,
		RichDescription: input.RichDescription,
		Image:           input.Image,
		Brand:           input.Brand,
		Price:           input.Price,
		CategoryID:      input.CategoryID,
		CountInStock:    input.CountInStock,
		Rating:          input.Rating,
		NumReviews:      input.NumReviews,
		IsFeatured:      input.IsFeatured,
		DateCreated:     time.Now().UTC(),
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	return s.products.Find(id)
}

func (s *productService) ListProducts(categoryIDs []uuid.UUID) ([]*model.Product, error) {
	return s.products.List(categoryIDs)
}

func (s *productService) ListFeatured(limit int) ([]*model.Product, error) {
	return s.products.ListFeatured(limit)
}

func (s *productService) UpdateProduct(id uuid.UUID, input ProductInput) (*model.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if _, err := s.categories.Find(input.CategoryID); err != nil {
		return nil, err
	}

	product, err := s.products.Find(id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.RichDescription = input.RichDescription
	if input.Image != "" {
		product.Image = input.Image
	}
	product.Brand = input.Brand
	product.Price = input.Price
	product.CategoryID = input.CategoryID
	product.CountInStock = input.CountInStock
	product.Rating = input.Rating
	product.NumReviews = input.NumReviews
	product.IsFeatured = input.IsFeatured

	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateGallery(id uuid.UUID, images []string) (*model.Product, error) {
	if err := s.products.UpdateGallery(id, images); err != nil {
		return nil, err
	}
	return s.products.Find(id)
}

func (s *productService) DeleteProduct(id uuid.UUID) error {
	return s.products.Delete(id)
}

func (s *productService) CountProducts() (int, error) {
	return s.products.Count()
}

func (s *productService) validate(input ProductInput) error {
	if input.Name == "" {
		return ErrEmptyProductName
	}
	if input.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
