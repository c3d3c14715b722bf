package mysql

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
)

type OrderItemRepository struct {
	db *sqlx.DB
}

func NewOrderItemRepository(db *sqlx.DB) *OrderItemRepository {
	return &OrderItemRepository{db: db}
}

func (r *OrderItemRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *OrderItemRepository) Create(item *model.OrderItem) error {
	_, err := r.db.Exec(
		`INSERT INTO order_items (id, product_id, quantity) VALUES (?, ?, ?)`,
		item.ID, item.ProductID, item.Quantity,
	)
	return errors.Wrap(err, "insert order item")
}

// FindPriced joins the item to its product. The product side of the
// join is optional so a dangling product reference surfaces as
// ErrProductNotFound rather than a missing row.
func (r *OrderItemRepository) FindPriced(id uuid.UUID) (*model.PricedItem, error) {
	var row struct {
		ID        uuid.UUID           `db:"id"`
		ProductID uuid.UUID           `db:"product_id"`
		Quantity  int                 `db:"quantity"`
		Price     decimal.NullDecimal `db:"price"`
	}
	const query = `
		SELECT i.id, i.product_id, i.quantity, p.price
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.id = ?
	`
	err := r.db.Get(&row, query, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrOrderItemNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select priced order item")
	}
	if !row.Price.Valid {
		return nil, model.ErrProductNotFound
	}
	return &model.PricedItem{
		Item:  model.OrderItem{ID: row.ID, ProductID: row.ProductID, Quantity: row.Quantity},
		Price: row.Price.Decimal,
	}, nil
}

func (r *OrderItemRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM order_items WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete order item")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrOrderItemNotFound
	}
	return nil
}

var _ model.OrderItemRepository = &OrderItemRepository{}
