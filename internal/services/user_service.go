package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmehl/goblog/internal/database"
	"github.com/jmehl/goblog/internal/models"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// UserService provides registration and authentication on top of the store.
type UserService struct {
	db *database.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

// Register validates the credentials and inserts a new user with a bcrypt
// hash of the password. The username is checked before the password; the
// first failure wins.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	if username == "" {
		return &ValidationError{Message: "Username is required."}
	}
	if password == "" {
		return &ValidationError{Message: "Password is required."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	q, err := s.db.Querier(ctx)
	if err != nil {
		return err
	}
	_, err = q.ExecContext(ctx, "INSERT INTO user (username, password) VALUES (?, ?)", username, string(hash))
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return &ConflictError{Message: fmt.Sprintf("User %s is already registered.", username)}
		}
		return err
	}
	return nil
}

// Authenticate verifies a user's credentials. The username lookup happens
// strictly before the password check, so the two failure messages never mix.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	q, err := s.db.Querier(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	row := q.QueryRowContext(ctx, "SELECT id, username, password FROM user WHERE username = ?", username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, &ValidationError{Message: "Incorrect username."}
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, &ValidationError{Message: "Incorrect password."}
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	q, err := s.db.Querier(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	row := q.QueryRowContext(ctx, "SELECT id, username, password FROM user WHERE id = ?", id)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("user id %d: %w", id, ErrNotFound)
		}
		return models.User{}, err
	}
	return user, nil
}
