package mysql

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"catalog/pkg/domain/model"
)

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productRow struct {
	ID              uuid.UUID       `db:"id"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	RichDescription string          `db:"rich_description"`
	Image           string          `db:"image"`
	Images          []byte          `db:"images"`
	Brand           string          `db:"brand"`
	Price           decimal.Decimal `db:"price"`
	CategoryID      uuid.UUID       `db:"category_id"`
	CountInStock    int             `db:"count_in_stock"`
	Rating          float64         `db:"rating"`
	NumReviews      int             `db:"num_reviews"`
	IsFeatured      bool            `db:"is_featured"`
	DateCreated     time.Time       `db:"date_created"`
}

const productColumns = `id, name, description, rich_description, image, images, brand, price, category_id, count_in_stock, rating, num_reviews, is_featured, date_created`

func (r productRow) toModel() (*model.Product, error) {
	var images []string
	if len(r.Images) > 0 {
		if err := json.Unmarshal(r.Images, &images); err != nil {
			return nil, errors.Wrap(err, "decode product gallery")
		}
	}
	return &model.Product{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		RichDescription: r.RichDescription,
		Image:           r.Image,
		Images:          images,
		Brand:           r.Brand,
		Price:           r.Price,
		CategoryID:      r.CategoryID,
		CountInStock:    r.CountInStock,
		Rating:          r.Rating,
		NumReviews:      r.NumReviews,
		IsFeatured:      r.IsFeatured,
		DateCreated:     r.DateCreated,
	}, nil
}

func encodeGallery(images []string) ([]byte, error) {
	if images == nil {
		images = []string{}
	}
	return json.Marshal(images)
}

func (r *ProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *ProductRepository) Create(product *model.Product) error {
	gallery, err := encodeGallery(product.Images)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query,
		product.ID, product.Name, product.Description, product.RichDescription,
		product.Image, gallery, product.Brand, product.Price, product.CategoryID,
		product.CountInStock, product.Rating, product.NumReviews, product.IsFeatured,
		product.DateCreated,
	)
	return errors.Wrap(err, "insert product")
}

func (r *ProductRepository) Find(id uuid.UUID) (*model.Product, error) {
	var row productRow
	err := r.db.Get(&row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select product")
	}
	return row.toModel()
}

func (r *ProductRepository) List(categoryIDs []uuid.UUID) ([]*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var args []interface{}
	if len(categoryIDs) > 0 {
		var err error
		query, args, err = sqlx.In(query+` WHERE category_id IN (?)`, categoryIDs)
		if err != nil {
			return nil, errors.Wrap(err, "build product filter")
		}
		query = r.db.Rebind(query)
	}

	var rows []productRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "select products")
	}
	return rowsToProducts(rows)
}

func (r *ProductRepository) ListFeatured(limit int) ([]*model.Product, error) {
	var rows []productRow
	err := r.db.Select(&rows,
		`SELECT `+productColumns+` FROM products WHERE is_featured = TRUE ORDER BY date_created DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "select featured products")
	}
	return rowsToProducts(rows)
}

func rowsToProducts(rows []productRow) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(rows))
	for _, row := range rows {
		product, err := row.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *ProductRepository) Update(product *model.Product) error {
	gallery, err := encodeGallery(product.Images)
	if err != nil {
		return err
	}
	const query = `
		UPDATE products
		SET name = ?, description = ?, rich_description = ?, image = ?, images = ?,
		    brand = ?, price = ?, category_id = ?, count_in_stock = ?, rating = ?,
		    num_reviews = ?, is_featured = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		product.Name, product.Description, product.RichDescription, product.Image,
		gallery, product.Brand, product.Price, product.CategoryID,
		product.CountInStock, product.Rating, product.NumReviews, product.IsFeatured,
		product.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update product")
	}
	return r.ensureFound(result, product.ID)
}

func (r *ProductRepository) UpdateGallery(id uuid.UUID, images []string) error {
	gallery, err := encodeGallery(images)
	if err != nil {
		return err
	}
	result, err := r.db.Exec(`UPDATE products SET images = ? WHERE id = ?`, gallery, id)
	if err != nil {
		return errors.Wrap(err, "update product gallery")
	}
	return r.ensureFound(result, id)
}

func (r *ProductRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, errors.Wrap(err, "count products")
	}
	return count, nil
}

// ensureFound distinguishes a no-op update of an existing row from an
// update of a missing row.
func (r *ProductRepository) ensureFound(result sql.Result, id uuid.UUID) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.Find(id); err != nil {
			return err
		}
	}
	return nil
}

var _ model.ProductRepository = &ProductRepository{}
