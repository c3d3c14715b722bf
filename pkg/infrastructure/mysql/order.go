package mysql

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
)

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

type orderRow struct {
	ID               uuid.UUID       `db:"id"`
	ShippingAddress1 string          `db:"shipping_address1"`
	ShippingAddress2 string          `db:"shipping_address2"`
	City             string          `db:"city"`
	Zip              string          `db:"zip"`
	Country          string          `db:"country"`
	Phone            string          `db:"phone"`
	Status           string          `db:"status"`
	TotalPrice       decimal.Decimal `db:"total_price"`
	UserID           uuid.UUID       `db:"user_id"`
	DateOrdered      time.Time       `db:"date_ordered"`
}

func (r orderRow) toModel(itemIDs []uuid.UUID) model.Order {
	return model.Order{
		ID:               r.ID,
		ItemIDs:          itemIDs,
		ShippingAddress1: r.ShippingAddress1,
		ShippingAddress2: r.ShippingAddress2,
		City:             r.City,
		Zip:              r.Zip,
		Country:          r.Country,
		Phone:            r.Phone,
		Status:           r.Status,
		TotalPrice:       r.TotalPrice,
		UserID:           r.UserID,
		DateOrdered:      r.DateOrdered,
	}
}

func (r *OrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// Create inserts the order row and links the already-materialized items
// to it, preserving their submission order.
func (r *OrderRepository) Create(order *model.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "begin create order")
	}
	defer func() { _ = tx.Rollback() }()

	const insert = `
		INSERT INTO orders (id, shipping_address1, shipping_address2, city, zip, country, phone, status, total_price, user_id, date_ordered)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.Exec(insert,
		order.ID, order.ShippingAddress1, order.ShippingAddress2,
		order.City, order.Zip, order.Country, order.Phone,
		order.Status, order.TotalPrice, order.UserID, order.DateOrdered,
	); err != nil {
		return errors.Wrap(err, "insert order")
	}

	for i, itemID := range order.ItemIDs {
		if _, err := tx.Exec(
			`UPDATE order_items SET order_id = ?, position = ? WHERE id = ?`,
			order.ID, i, itemID,
		); err != nil {
			return errors.Wrap(err, "link order item")
		}
	}
	return errors.Wrap(tx.Commit(), "commit create order")
}

func (r *OrderRepository) Find(id uuid.UUID) (*model.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, shipping_address1, shipping_address2, city, zip, country, phone, status, total_price, user_id, date_ordered FROM orders WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select order")
	}

	itemIDs, err := r.itemIDs(id)
	if err != nil {
		return nil, err
	}
	order := row.toModel(itemIDs)
	return &order, nil
}

func (r *OrderRepository) itemIDs(orderID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Select(&ids, `SELECT id FROM order_items WHERE order_id = ? ORDER BY position`, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "select order item ids")
	}
	return ids, nil
}

type expandedItemRow struct {
	ItemID          uuid.UUID       `db:"item_id"`
	Quantity        int             `db:"quantity"`
	ProductID       uuid.UUID       `db:"product_id"`
	ProductName     string          `db:"product_name"`
	Description     string          `db:"description"`
	RichDescription string          `db:"rich_description"`
	Image           string          `db:"image"`
	Brand           string          `db:"brand"`
	Price           decimal.Decimal `db:"price"`
	CountInStock    int             `db:"count_in_stock"`
	Rating          float64         `db:"rating"`
	NumReviews      int             `db:"num_reviews"`
	IsFeatured      bool            `db:"is_featured"`
	DateCreated     time.Time       `db:"date_created"`
	CategoryID      uuid.UUID       `db:"category_id"`
	CategoryName    string          `db:"category_name"`
	Icon            string          `db:"icon"`
	Color           string          `db:"color"`
}

// FindExpanded resolves the order three join levels deep: items, their
// products and the products' categories, in submission order.
func (r *OrderRepository) FindExpanded(id uuid.UUID) (*model.ExpandedOrder, error) {
	order, err := r.Find(id)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT i.id AS item_id, i.quantity,
		       p.id AS product_id, p.name AS product_name, p.description, p.rich_description,
		       p.image, p.brand, p.price, p.count_in_stock, p.rating, p.num_reviews,
		       p.is_featured, p.date_created,
		       c.id AS category_id, c.name AS category_name, c.icon, c.color
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE i.order_id = ?
		ORDER BY i.position
	`
	var rows []expandedItemRow
	if err := r.db.Select(&rows, query, id); err != nil {
		return nil, errors.Wrap(err, "select expanded order items")
	}

	expanded := &model.ExpandedOrder{Order: *order, Items: make([]model.ExpandedItem, 0, len(rows))}
	for _, row := range rows {
		expanded.Items = append(expanded.Items, model.ExpandedItem{
			Item: model.OrderItem{ID: row.ItemID, ProductID: row.ProductID, Quantity: row.Quantity},
			Product: model.Product{
				ID:              row.ProductID,
				Name:            row.ProductName,
				Description:     row.Description,
				RichDescription: row.RichDescription,
				Image:           row.Image,
				Brand:           row.Brand,
				Price:           row.Price,
				CategoryID:      row.CategoryID,
				CountInStock:    row.CountInStock,
				Rating:          row.Rating,
				NumReviews:      row.NumReviews,
				IsFeatured:      row.IsFeatured,
				DateCreated:     row.DateCreated,
			},
			Category: model.Category{ID: row.CategoryID, Name: row.CategoryName, Icon: row.Icon, Color: row.Color},
		})
	}
	return expanded, nil
}

type orderSummaryRow struct {
	orderRow
	UserName string `db:"user_name"`
}

func (r *OrderRepository) ListAll() ([]model.OrderSummary, error) {
	const query = `
		SELECT o.id, o.shipping_address1, o.shipping_address2, o.city, o.zip, o.country, o.phone,
		       o.status, o.total_price, o.user_id, o.date_ordered, u.name AS user_name
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.date_ordered DESC
	`
	var rows []orderSummaryRow
	if err := r.db.Select(&rows, query); err != nil {
		return nil, errors.Wrap(err, "select orders")
	}

	summaries := make([]model.OrderSummary, 0, len(rows))
	for _, row := range rows {
		itemIDs, err := r.itemIDs(row.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, model.OrderSummary{Order: row.toModel(itemIDs), UserName: row.UserName})
	}
	return summaries, nil
}

func (r *OrderRepository) ListByUser(userID uuid.UUID) ([]*model.ExpandedOrder, error) {
	var ids []uuid.UUID
	err := r.db.Select(&ids, `SELECT id FROM orders WHERE user_id = ? ORDER BY date_ordered DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "select user order ids")
	}

	expanded := make([]*model.ExpandedOrder, 0, len(ids))
	for _, id := range ids {
		order, err := r.FindExpanded(id)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, order)
	}
	return expanded, nil
}

func (r *OrderRepository) UpdateStatus(id uuid.UUID, status string) error {
	result, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return errors.Wrap(err, "update order status")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the order is missing or the status is unchanged;
		// disambiguate with a lookup.
		if _, err := r.Find(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete order")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) TotalSales() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `SELECT COALESCE(SUM(total_price), 0) FROM orders`)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "sum total sales")
	}
	return total, nil
}

func (r *OrderRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, errors.Wrap(err, "count orders")
	}
	return count, nil
}

var _ model.OrderRepository = &OrderRepository{}
