package service

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"catalog/pkg/domain/model"
)

var (
	ErrInvalidCredentials = errors.New("wrong email or password")
	ErrEmptyUserFields    = errors.New("name, email and password are required")
)

type NewUser struct {
	Name      string
	Email     string
	Password  string
	Phone     string
	IsAdmin   bool
	Street    string
	Apartment string
	Zip       string
	City      string
	Country   string
}

type UserService interface {
	Register(input NewUser) (*model.User, error)
	// Login returns a signed bearer token for valid credentials.
	Login(email, password string) (string, error)
	GetUser(id uuid.UUID) (*model.User, error)
	ListUsers() ([]*model.User, error)
	// UpdateUser patches the stored user: blank string fields keep
	// their stored values.
	UpdateUser(id uuid.UUID, input NewUser) (*model.User, error)
	DeleteUser(id uuid.UUID) error
	CountUsers() (int, error)
}

func NewUserService(users model.UserRepository, tokens *Tokens) UserService {
	return &userService{users: users, tokens: tokens}
}

type userService struct {
	users  model.UserRepository
	tokens *Tokens
}

func (s *userService) Register(input NewUser) (*model.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrEmptyUserFields
	}
	if _, err := s.users.FindByEmail(input.Email); err == nil {
		return nil, model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id, err := s.users.NextID()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           id,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		IsAdmin:      input.IsAdmin,
		Street:       input.Street,
		Apartment:    input.Apartment,
		Zip:          input.Zip,
		City:         input.City,
		Country:      input.Country,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Login(email, password string) (string, error) {
	user, err := s.users.FindByEmail(email)
	if errors.Is(err, model.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user)
}

func (s *userService) GetUser(id uuid.UUID) (*model.User, error) {
	return s.users.Find(id)
}

func (s *userService) ListUsers() ([]*model.User, error) {
	return s.users.ListAll()
}

func (s *userService) UpdateUser(id uuid.UUID, input NewUser) (*model.User, error) {
	user, err := s.users.Find(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Street != "" {
		user.Street = input.Street
	}
	if input.Apartment != "" {
		user.Apartment = input.Apartment
	}
	if input.Zip != "" {
		user.Zip = input.Zip
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.Country != "" {
		user.Country = input.Country
	}
	user.IsAdmin = input.IsAdmin

	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	return s.users.Delete(id)
}

func (s *userService) CountUsers() (int, error) {
	return s.users.Count()
}
