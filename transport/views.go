package transport

import (
	"time"

	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
)

// View types shape the JSON responses; identifiers render as strings
// and nested references expand only where the endpoint promises it.

type categoryView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func newCategoryView(c *model.Category) categoryView {
	return categoryView{ID: c.ID.String(), Name: c.Name, Icon: c.Icon, Color: c.Color}
}

type productView struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	RichDescription string          `json:"richDescription"`
	Image           string          `json:"image"`
	Images          []string        `json:"images"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	CountInStock    int             `json:"countInStock"`
	Rating          float64         `json:"rating"`
	NumReviews      int             `json:"numReviews"`
	IsFeatured      bool            `json:"isFeatured"`
	DateCreated     time.Time       `json:"dateCreated"`
}

func newProductView(p *model.Product) productView {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productView{
		ID:              p.ID.String(),
		Name:            p.Name,
		Description:     p.Description,
		RichDescription: p.RichDescription,
		Image:           p.Image,
		Images:          images,
		Brand:           p.Brand,
		Price:           p.Price,
		Category:        p.CategoryID.String(),
		CountInStock:    p.CountInStock,
		Rating:          p.Rating,
		NumReviews:      p.NumReviews,
		IsFeatured:      p.IsFeatured,
		DateCreated:     p.DateCreated,
	}
}

type expandedProductView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Brand        string          `json:"brand"`
	Price        decimal.Decimal `json:"price"`
	Category     categoryView    `json:"category"`
	CountInStock int             `json:"countInStock"`
}

type userView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

func newUserView(u *model.User) userView {
	return userView{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		IsAdmin:   u.IsAdmin,
		Street:    u.Street,
		Apartment: u.Apartment,
		Zip:       u.Zip,
		City:      u.City,
		Country:   u.Country,
	}
}

type userRefView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// orderFields carries everything an order response shares; the user
// reference differs per endpoint (plain id vs resolved name), so it
// stays out of the embedded part.
type orderFields struct {
	ID               string          `json:"id"`
	OrderItems       []string        `json:"orderItems"`
	ShippingAddress1 string          `json:"shippingAddress1"`
	ShippingAddress2 string          `json:"shippingAddress2"`
	City             string          `json:"city"`
	Zip              string          `json:"zip"`
	Country          string          `json:"country"`
	Phone            string          `json:"phone"`
	Status           string          `json:"status"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	DateOrdered      time.Time       `json:"dateOrdered"`
}

func newOrderFields(o *model.Order) orderFields {
	items := make([]string, 0, len(o.ItemIDs))
	for _, id := range o.ItemIDs {
		items = append(items, id.String())
	}
	return orderFields{
		ID:               o.ID.String(),
		OrderItems:       items,
		ShippingAddress1: o.ShippingAddress1,
		ShippingAddress2: o.ShippingAddress2,
		City:             o.City,
		Zip:              o.Zip,
		Country:          o.Country,
		Phone:            o.Phone,
		Status:           o.Status,
		TotalPrice:       o.TotalPrice,
		DateOrdered:      o.DateOrdered,
	}
}

type orderView struct {
	orderFields
	User string `json:"user"`
}

func newOrderView(o *model.Order) orderView {
	return orderView{orderFields: newOrderFields(o), User: o.UserID.String()}
}

type orderSummaryView struct {
	orderFields
	User userRefView `json:"user"`
}

func newOrderSummaryView(s model.OrderSummary) orderSummaryView {
	return orderSummaryView{
		orderFields: newOrderFields(&s.Order),
		User:        userRefView{ID: s.Order.UserID.String(), Name: s.UserName},
	}
}

type expandedItemView struct {
	ID       string              `json:"id"`
	Quantity int                 `json:"quantity"`
	Product  expandedProductView `json:"product"`
}

type expandedOrderView struct {
	ID               string             `json:"id"`
	OrderItems       []expandedItemView `json:"orderItems"`
	ShippingAddress1 string             `json:"shippingAddress1"`
	ShippingAddress2 string             `json:"shippingAddress2"`
	City             string             `json:"city"`
	Zip              string             `json:"zip"`
	Country          string             `json:"country"`
	Phone            string             `json:"phone"`
	Status           string             `json:"status"`
	TotalPrice       decimal.Decimal    `json:"totalPrice"`
	User             string             `json:"user"`
	DateOrdered      time.Time          `json:"dateOrdered"`
}

func newExpandedOrderView(e *model.ExpandedOrder) expandedOrderView {
	items := make([]expandedItemView, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, expandedItemView{
			ID:       item.Item.ID.String(),
			Quantity: item.Item.Quantity,
			Product: expandedProductView{
				ID:           item.Product.ID.String(),
				Name:         item.Product.Name,
				Image:        item.Product.Image,
				Brand:        item.Product.Brand,
				Price:        item.Product.Price,
				Category:     newCategoryView(&item.Category),
				CountInStock: item.Product.CountInStock,
			},
		})
	}
	return expandedOrderView{
		ID:               e.Order.ID.String(),
		OrderItems:       items,
		ShippingAddress1: e.Order.ShippingAddress1,
		ShippingAddress2: e.Order.ShippingAddress2,
		City:             e.Order.City,
		Zip:              e.Order.Zip,
		Country:          e.Order.Country,
		Phone:            e.Order.Phone,
		Status:           e.Order.Status,
		TotalPrice:       e.Order.TotalPrice,
		User:             e.Order.UserID.String(),
		DateOrdered:      e.Order.DateOrdered,
	}
}
