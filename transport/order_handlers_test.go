package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

func orderRouter(orders service.OrderService) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	registerOrderRoutes(api, orders)
	return r
}

func TestCreateOrderHandler(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()
	body := `{
		"orderItems": [{"product": "` + productID.String() + `", "quantity": 2}],
		"shippingAddress1": "Main Street 1",
		"city": "Springfield",
		"zip": "12345",
		"country": "US",
		"phone": "+1-555-0100",
		"user": "` + userID.String() + `"
	}`

	t.Run("created", func(t *testing.T) {
		placed := &model.Order{
			ID:          uuid.New(),
			ItemIDs:     []uuid.UUID{uuid.New()},
			Status:      model.DefaultOrderStatus,
			TotalPrice:  decimal.RequireFromString("25.50"),
			UserID:      userID,
			DateOrdered: time.Now().UTC(),
		}
		router := orderRouter(&stubOrderService{order: placed})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, w.Code)
		var got orderView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, placed.ID.String(), got.ID)
		assert.True(t, decimal.RequireFromString("25.50").Equal(got.TotalPrice))
		assert.Equal(t, model.DefaultOrderStatus, got.Status)
	})

	t.Run("empty order is a validation failure", func(t *testing.T) {
		router := orderRouter(&stubOrderService{placeErr: service.ErrOrderIsEmpty})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "empty order")
	})

	t.Run("dangling product is a client error with its own message", func(t *testing.T) {
		router := orderRouter(&stubOrderService{placeErr: model.ErrProductNotFound})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "product not found")
	})

	t.Run("malformed body", func(t *testing.T) {
		router := orderRouter(&stubOrderService{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader("{")))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetOrderHandler(t *testing.T) {
	category := model.Category{ID: uuid.New(), Name: "Books", Icon: "book", Color: "#00f"}
	product := model.Product{
		ID:           uuid.New(),
		Name:         "Go in Practice",
		Image:        "/public/uploads/go-in-practice.png",
		Brand:        "Manning",
		Price:        decimal.RequireFromString("10.00"),
		CategoryID:   category.ID,
		CountInStock: 7,
	}
	item := model.OrderItem{ID: uuid.New(), ProductID: product.ID, Quantity: 2}
	expanded := &model.ExpandedOrder{
		Order: model.Order{
			ID:          uuid.New(),
			ItemIDs:     []uuid.UUID{item.ID},
			Status:      model.DefaultOrderStatus,
			TotalPrice:  decimal.RequireFromString("20.00"),
			UserID:      uuid.New(),
			DateOrdered: time.Now().UTC(),
		},
		Items: []model.ExpandedItem{{Item: item, Product: product, Category: category}},
	}
	router := orderRouter(&stubOrderService{expanded: expanded})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+expanded.Order.ID.String(), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got expandedOrderView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, expanded.Order.ID.String(), got.ID)
	assert.Equal(t, expanded.Order.UserID.String(), got.User)
	require.Len(t, got.OrderItems, 1)
	gotItem := got.OrderItems[0]
	assert.Equal(t, item.ID.String(), gotItem.ID)
	assert.Equal(t, 2, gotItem.Quantity)
	assert.Equal(t, product.ID.String(), gotItem.Product.ID)
	assert.Equal(t, "Go in Practice", gotItem.Product.Name)
	assert.True(t, decimal.RequireFromString("10.00").Equal(gotItem.Product.Price))
	assert.Equal(t, 7, gotItem.Product.CountInStock)
	assert.Equal(t, category.ID.String(), gotItem.Product.Category.ID)
	assert.Equal(t, "Books", gotItem.Product.Category.Name)

	t.Run("missing order", func(t *testing.T) {
		router := orderRouter(&stubOrderService{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteOrderHandler(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		router := orderRouter(&stubOrderService{deleted: true})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		router := orderRouter(&stubOrderService{deleted: false})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/orders/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestOrderAggregateHandlers(t *testing.T) {
	stub := &stubOrderService{
		total: decimal.RequireFromString("35.50"),
		count: 2,
	}
	router := orderRouter(stub)

	t.Run("total sales", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/get/totalsales", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "35.5")
	})

	t.Run("count", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/get/count", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"orderCount": 2}`, w.Body.String())
	})

	t.Run("user with no orders gets an empty list", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/orders/get/usersorders/"+uuid.NewString(), nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})
}

var _ service.OrderService = &stubOrderService{}

type stubOrderService struct {
	order    *model.Order
	expanded *model.ExpandedOrder
	placeErr error
	deleted  bool
	total    decimal.Decimal
	count    int
}

func (s *stubOrderService) PlaceOrder(service.NewOrder) (*model.Order, error) {
	if s.placeErr != nil {
		return nil, s.placeErr
	}
	return s.order, nil
}

func (s *stubOrderService) GetOrder(uuid.UUID) (*model.ExpandedOrder, error) {
	if s.expanded != nil {
		return s.expanded, nil
	}
	if s.order == nil {
		return nil, model.ErrOrderNotFound
	}
	return &model.ExpandedOrder{Order: *s.order}, nil
}

func (s *stubOrderService) ListOrders() ([]model.OrderSummary, error) {
	return []model.OrderSummary{}, nil
}

func (s *stubOrderService) ListUserOrders(uuid.UUID) ([]*model.ExpandedOrder, error) {
	return []*model.ExpandedOrder{}, nil
}

func (s *stubOrderService) UpdateStatus(uuid.UUID, string) (*model.Order, error) {
	if s.order == nil {
		return nil, model.ErrOrderNotFound
	}
	return s.order, nil
}

func (s *stubOrderService) DeleteOrder(uuid.UUID) (bool, error) {
	return s.deleted, nil
}

func (s *stubOrderService) TotalSales() (decimal.Decimal, error) {
	return s.total, nil
}

func (s *stubOrderService) CountOrders() (int, error) {
	return s.count, nil
}
