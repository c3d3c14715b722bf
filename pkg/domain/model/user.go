package model

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email is already registered")
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	IsAdmin      bool
	Street       string
	Apartment    string
	Zip          string
	City         string
	Country      string
}

type UserRepository interface {
	NextID() (uuid.UUID, error)
	Create(user *User) error
	Find(id uuid.UUID) (*User, error)
	FindByEmail(email string) (*User, error)
	ListAll() ([]*User, error)
	Update(user *User) error
	Delete(id uuid.UUID) error
	Count() (int, error)
}
