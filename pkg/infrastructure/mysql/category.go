package mysql

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"catalog/pkg/domain/model"
)

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryRow struct {
	ID    uuid.UUID `db:"id"`
	Name  string    `db:"name"`
	Icon  string    `db:"icon"`
	Color string    `db:"color"`
}

func (r categoryRow) toModel() *model.Category {
	return &model.Category{ID: r.ID, Name: r.Name, Icon: r.Icon, Color: r.Color}
}

func (r *CategoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *CategoryRepository) Create(category *model.Category) error {
	_, err := r.db.Exec(
		`INSERT INTO categories (id, name, icon, color) VALUES (?, ?, ?, ?)`,
		category.ID, category.Name, category.Icon, category.Color,
	)
	return errors.Wrap(err, "insert category")
}

func (r *CategoryRepository) Find(id uuid.UUID) (*model.Category, error) {
	var row categoryRow
	err := r.db.Get(&row, `SELECT id, name, icon, color FROM categories WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrCategoryNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select category")
	}
	return row.toModel(), nil
}

func (r *CategoryRepository) ListAll() ([]*model.Category, error) {
	var rows []categoryRow
	if err := r.db.Select(&rows, `SELECT id, name, icon, color FROM categories ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "select categories")
	}
	categories := make([]*model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.toModel())
	}
	return categories, nil
}

func (r *CategoryRepository) Update(category *model.Category) error {
	result, err := r.db.Exec(
		`UPDATE categories SET name = ?, icon = ?, color = ? WHERE id = ?`,
		category.Name, category.Icon, category.Color, category.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update category")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.Find(category.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *CategoryRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete category")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrCategoryNotFound
	}
	return nil
}

var _ model.CategoryRepository = &CategoryRepository{}
