package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

type orderHandlers struct {
	orders service.OrderService
}

type createOrderRequest struct {
	OrderItems []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	} `json:"orderItems"`
	ShippingAddress1 string `json:"shippingAddress1"`
	ShippingAddress2 string `json:"shippingAddress2"`
	City             string `json:"city"`
	Zip              string `json:"zip"`
	Country          string `json:"country"`
	Phone            string `json:"phone"`
	Status           string `json:"status"`
	User             string `json:"user"`
}

func (h *orderHandlers) create(w http.ResponseWriter, r *http.Request) {
	var body createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}

	userID, err := uuid.Parse(body.User)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid user id")
		return
	}

	input := service.NewOrder{
		Items:            make([]service.NewOrderItem, 0, len(body.OrderItems)),
		ShippingAddress1: body.ShippingAddress1,
		ShippingAddress2: body.ShippingAddress2,
		City:             body.City,
		Zip:              body.Zip,
		Country:          body.Country,
		Phone:            body.Phone,
		Status:           body.Status,
		UserID:           userID,
	}
	for _, item := range body.OrderItems {
		productID, err := uuid.Parse(item.Product)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid product id")
			return
		}
		input.Items = append(input.Items, service.NewOrderItem{ProductID: productID, Quantity: item.Quantity})
	}

	order, err := h.orders.PlaceOrder(input)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, newOrderView(order))
	case errors.Is(err, model.ErrProductNotFound), errors.Is(err, model.ErrOrderItemNotFound):
		// Dangling reference: a client error, but distinguishable from
		// plain input validation by its message.
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, err)
	}
}

func (h *orderHandlers) list(w http.ResponseWriter, _ *http.Request) {
	summaries, err := h.orders.ListOrders()
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]orderSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, newOrderSummaryView(s))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *orderHandlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newExpandedOrderView(order))
}

func (h *orderHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	order, err := h.orders.UpdateStatus(id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderView(order))
}

func (h *orderHandlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := h.orders.DeleteOrder(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !deleted {
		writeMessage(w, http.StatusNotFound, "order not found")
		return
	}
	writeMessage(w, http.StatusOK, "the order is deleted")
}

func (h *orderHandlers) totalSales(w http.ResponseWriter, _ *http.Request) {
	total, err := h.orders.TotalSales()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"totalsales": total})
}

func (h *orderHandlers) count(w http.ResponseWriter, _ *http.Request) {
	count, err := h.orders.CountOrders()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"orderCount": count})
}

func (h *orderHandlers) userOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userid")
	if !ok {
		return
	}
	orders, err := h.orders.ListUserOrders(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	views := make([]expandedOrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, newExpandedOrderView(order))
	}
	writeJSON(w, http.StatusOK, views)
}

// pathID parses a uuid path variable, answering 400 itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
