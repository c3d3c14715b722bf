package tests

import (
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

func setupProducts(t *testing.T) (service.ProductService, *mockProductRepository, *mockCategoryRepository) {
	t.Helper()
	products := &mockProductRepository{store: make(map[uuid.UUID]*model.Product)}
	categories := &mockCategoryRepository{store: make(map[uuid.UUID]*model.Category)}
	return service.NewProductService(products, categories), products, categories
}

func seedCategory(t *testing.T, categories *mockCategoryRepository, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, categories.Create(&model.Category{ID: id, Name: name}))
	return id
}

func TestCreateProduct(t *testing.T) {
	productService, products, categories := setupProducts(t)
	categoryID := seedCategory(t, categories, "Electronics")

	product, err := productService.CreateProduct(service.ProductInput{
		Name:         "Laptop",
		Description:  "A laptop",
		Price:        decimal.RequireFromString("999.99"),
		CategoryID:   categoryID,
		CountInStock: 5,
	})
	require.NoError(t, err)
	assert.Contains(t, products.store, product.ID)
	assert.False(t, product.DateCreated.IsZero())

	t.Run("empty name", func(t *testing.T) {
		_, err := productService.CreateProduct(service.ProductInput{CategoryID: categoryID})
		assert.ErrorIs(t, err, service.ErrEmptyProductName)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := productService.CreateProduct(service.ProductInput{
			Name:       "Broken",
			Price:      decimal.RequireFromString("-1"),
			CategoryID: categoryID,
		})
		assert.ErrorIs(t, err, service.ErrNegativePrice)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := productService.CreateProduct(service.ProductInput{
			Name:       "Orphan",
			CategoryID: uuid.New(),
		})
		assert.ErrorIs(t, err, model.ErrCategoryNotFound)
	})
}

func TestListProducts(t *testing.T) {
	productService, _, categories := setupProducts(t)
	electronics := seedCategory(t, categories, "Electronics")
	books := seedCategory(t, categories, "Books")

	mustCreate := func(name string, categoryID uuid.UUID, featured bool) {
		_, err := productService.CreateProduct(service.ProductInput{
			Name:       name,
			Price:      decimal.RequireFromString("1.00"),
			CategoryID: categoryID,
			IsFeatured: featured,
		})
		require.NoError(t, err)
	}
	mustCreate("Laptop", electronics, true)
	mustCreate("Phone", electronics, false)
	mustCreate("Novel", books, false)

	t.Run("no filter returns everything", func(t *testing.T) {
		all, err := productService.ListProducts(nil)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("category filter", func(t *testing.T) {
		filtered, err := productService.ListProducts([]uuid.UUID{electronics})
		require.NoError(t, err)
		require.Len(t, filtered, 2)
		for _, p := range filtered {
			assert.Equal(t, electronics, p.CategoryID)
		}
	})

	t.Run("featured", func(t *testing.T) {
		featured, err := productService.ListFeatured(10)
		require.NoError(t, err)
		require.Len(t, featured, 1)
		assert.Equal(t, "Laptop", featured[0].Name)
	})

	t.Run("count", func(t *testing.T) {
		count, err := productService.CountProducts()
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})
}

func TestUpdateProduct(t *testing.T) {
	productService, _, categories := setupProducts(t)
	categoryID := seedCategory(t, categories, "Electronics")

	product, err := productService.CreateProduct(service.ProductInput{
		Name:       "Laptop",
		Image:      "/public/uploads/laptop.png",
		Price:      decimal.RequireFromString("999.99"),
		CategoryID: categoryID,
	})
	require.NoError(t, err)

	updated, err := productService.UpdateProduct(product.ID, service.ProductInput{
		Name:       "Laptop Pro",
		Price:      decimal.RequireFromString("1299.99"),
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, "/public/uploads/laptop.png", updated.Image, "blank image keeps the stored one")

	t.Run("gallery", func(t *testing.T) {
		gallery := []string{"/public/uploads/a.png", "/public/uploads/b.png"}
		withGallery, err := productService.UpdateGallery(product.ID, gallery)
		require.NoError(t, err)
		assert.Equal(t, gallery, withGallery.Images)

		_, err = productService.UpdateGallery(uuid.New(), gallery)
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, productService.DeleteProduct(product.ID))
		assert.ErrorIs(t, productService.DeleteProduct(product.ID), model.ErrProductNotFound)
	})
}

var _ model.ProductRepository = &mockProductRepository{}

type mockProductRepository struct {
	store map[uuid.UUID]*model.Product
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockProductRepository) Create(product *model.Product) error {
	clone := *product
	m.store[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	product, ok := m.store[id]
	if !ok {
		return nil, model.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *mockProductRepository) List(categoryIDs []uuid.UUID) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(m.store))
	for _, product := range m.store {
		if len(categoryIDs) > 0 && !containsID(categoryIDs, product.CategoryID) {
			continue
		}
		clone := *product
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (m *mockProductRepository) ListFeatured(limit int) ([]*model.Product, error) {
	featured := make([]*model.Product, 0)
	for _, product := range m.store {
		if product.IsFeatured && len(featured) < limit {
			clone := *product
			featured = append(featured, &clone)
		}
	}
	return featured, nil
}

func (m *mockProductRepository) Update(product *model.Product) error {
	if _, ok := m.store[product.ID]; !ok {
		return model.ErrProductNotFound
	}
	clone := *product
	m.store[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) UpdateGallery(id uuid.UUID, images []string) error {
	product, ok := m.store[id]
	if !ok {
		return model.ErrProductNotFound
	}
	product.Images = images
	return nil
}

func (m *mockProductRepository) Delete(id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return model.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}

func (m *mockProductRepository) Count() (int, error) {
	return len(m.store), nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
