package model

import (
	"errors"

	"github.com/google/uuid"
)

var ErrCategoryNotFound = errors.New("category not found")

type Category struct {
	ID    uuid.UUID
	Name  string
	Icon  string
	Color string
}

type CategoryRepository interface {
	NextID() (uuid.UUID, error)
	Create(category *Category) error
	Find(id uuid.UUID) (*Category, error)
	ListAll() ([]*Category, error)
	Update(category *Category) error
	Delete(id uuid.UUID) error
}
