package service

import (
	"errors"

	"github.com/google/uuid"

	"catalog/pkg/domain/model"
)

var ErrEmptyCategoryName = errors.New("category name cannot be empty")

type CategoryService interface {
	CreateCategory(name, icon, color string) (*model.Category, error)
	GetCategory(id uuid.UUID) (*model.Category, error)
	ListCategories() ([]*model.Category, error)
	UpdateCategory(id uuid.UUID, name, icon, color string) (*model.Category, error)
	DeleteCategory(id uuid.UUID) error
}

func NewCategoryService(categories model.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

type categoryService struct {
	categories model.CategoryRepository
}

func (s *categoryService) CreateCategory(name, icon, color string) (*model.Category, error) {
	if name == "" {
		return nil, ErrEmptyCategoryName
	}
	id, err := s.categories.NextID()
	if err != nil {
		return nil, err
	}
	category := &model.Category{ID: id, Name: name, Icon: icon, Color: color}
	if err := s.categories.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategory(id uuid.UUID) (*model.Category, error) {
	return s.categories.Find(id)
}

func (s *categoryService) ListCategories() ([]*model.Category, error) {
	return s.categories.ListAll()
}

func (s *categoryService) UpdateCategory(id uuid.UUID, name, icon, color string) (*model.Category, error) {
	category, err := s.categories.Find(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		category.Name = name
	}
	category.Icon = icon
	category.Color = color
	if err := s.categories.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id uuid.UUID) error {
	return s.categories.Delete(id)
}
