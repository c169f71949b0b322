package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"staybook/internal/domain"
	"staybook/internal/pagination"
	"staybook/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when an email is already taken by another account.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrPasswordMismatch is returned when the current password given for a change is wrong.
	ErrPasswordMismatch = errors.New("current password does not match")
)

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, user *domain.User, plainPassword string) error
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	ChangePassword(ctx context.Context, user *domain.User, update domain.PasswordUpdate) error
	ListPage(ctx context.Context, cfg pagination.Config) (pagination.Page[domain.User], error)
}

type userService struct {
	users       repository.UserRepository
	hasher      PasswordHasher
	adminEmails map[string]struct{}
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, adminEmails []string) UserService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		admins[normalizeEmail(email)] = struct{}{}
	}
	return &userService{
		users:       users,
		hasher:      hasher,
		adminEmails: admins,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User, plainPassword string) error {
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" {
		return errors.New("email is required")
	}
	if plainPassword == "" {
		return errors.New("password is required")
	}

	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	user.Roles = []string{domain.RoleUser}
	if _, ok := s.adminEmails[user.Email]; ok {
		user.Roles = append(user.Roles, domain.RoleAdmin)
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, user *domain.User) error {
	user.Email = normalizeEmail(user.Email)
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, user *domain.User, update domain.PasswordUpdate) error {
	if !s.hasher.Verify(update.OldPassword, user.PasswordHash) {
		return ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(update.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store new password: %w", err)
	}
	return nil
}

func (s *userService) ListPage(ctx context.Context, cfg pagination.Config) (pagination.Page[domain.User], error) {
	return pagination.Load[domain.User](ctx, s.users, cfg)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
