package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/Akshay-Unavane/To-Do-App/internal/domain"
	"github.com/Akshay-Unavane/To-Do-App/internal/repo"
	"github.com/Akshay-Unavane/To-Do-App/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrValidation         = errors.New("email & password required")
)

// bcryptCost resists offline brute force while staying usable for
// interactive login.
const bcryptCost = 10

// UserService holds registration, login, password reset and profile logic.
type UserService struct {
	repo repo.UserRepo
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a user with a bcrypt-hashed password. The name is
// optional and defaults to "". Duplicate emails fail with ErrEmailTaken;
// uniqueness is settled by the store's constraint, not a pre-check, so two
// concurrent registrations cannot both win.
func (s *UserService) Register(ctx context.Context, name, email, password string) (dom.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, name, email, string(hash))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// ValidateCredentials checks email and password; returns the user if valid.
// Unknown email and wrong password both come back as ErrInvalidCredentials.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ResetPassword replaces the password for the given email.
// ErrInvalidCredentials when the email is unknown.
func (s *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = strings.TrimSpace(email)
	if email == "" || newPassword == "" {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	n, err := s.repo.UpdatePasswordByEmail(ctx, email, string(hash))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidCredentials
	}
	return nil
}

// Rename sets the display name of the given user and returns the updated
// record. Existing todos keep the creation-time name snapshot.
func (s *UserService) Rename(ctx context.Context, userID int64, name string) (dom.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dom.User{}, ErrValidation
	}
	u, err := s.repo.UpdateName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	return u, nil
}
