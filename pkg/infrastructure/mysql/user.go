package mysql

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"catalog/pkg/domain/model"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Phone        string    `db:"phone"`
	IsAdmin      bool      `db:"is_admin"`
	Street       string    `db:"street"`
	Apartment    string    `db:"apartment"`
	Zip          string    `db:"zip"`
	City         string    `db:"city"`
	Country      string    `db:"country"`
}

const userColumns = `id, name, email, password_hash, phone, is_admin, street, apartment, zip, city, country`

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Phone:        r.Phone,
		IsAdmin:      r.IsAdmin,
		Street:       r.Street,
		Apartment:    r.Apartment,
		Zip:          r.Zip,
		City:         r.City,
		Country:      r.Country,
	}
}

func (r *UserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (r *UserRepository) Create(user *model.User) error {
	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Phone,
		user.IsAdmin, user.Street, user.Apartment, user.Zip, user.City, user.Country,
	)
	return errors.Wrap(err, "insert user")
}

func (r *UserRepository) Find(id uuid.UUID) (*model.User, error) {
	var row userRow
	err := r.db.Get(&row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user")
	}
	return row.toModel(), nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var row userRow
	err := r.db.Get(&row, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err == sql.ErrNoRows {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select user by email")
	}
	return row.toModel(), nil
}

func (r *UserRepository) ListAll() ([]*model.User, error) {
	var rows []userRow
	if err := r.db.Select(&rows, `SELECT `+userColumns+` FROM users ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "select users")
	}
	users := make([]*model.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *UserRepository) Update(user *model.User) error {
	const query = `
		UPDATE users
		SET name = ?, email = ?, password_hash = ?, phone = ?, is_admin = ?,
		    street = ?, apartment = ?, zip = ?, city = ?, country = ?
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		user.Name, user.Email, user.PasswordHash, user.Phone, user.IsAdmin,
		user.Street, user.Apartment, user.Zip, user.City, user.Country, user.ID,
	)
	if err != nil {
		return errors.Wrap(err, "update user")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		if _, err := r.Find(user.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) Delete(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "delete user")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count() (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, errors.Wrap(err, "count users")
	}
	return count, nil
}

var _ model.UserRepository = &UserRepository{}
