package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/linkscout/scheduler-finder/api/internal/auth"
	"github.com/linkscout/scheduler-finder/api/internal/entity"
	"github.com/linkscout/scheduler-finder/api/internal/repository"
)

type mockUsersRepository struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	create      func(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
}

func (m *mockUsersRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.findByEmail != nil {
		return m.findByEmail(ctx, email)
	}
	return nil, errors.New("findByEmail not implemented")
}

func (m *mockUsersRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, errors.New("findByID not implemented")
}

func (m *mockUsersRepository) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if m.create != nil {
		return m.create(ctx, email, passwordHash, role)
	}
	return nil, errors.New("create not implemented")
}

func newTestJWTManager() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour)
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("unexpected bcrypt error: %v", err)
	}

	user := &entity.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hashed), Role: "user"}

	tests := map[string]struct {
		email       string
		password    string
		repo        repository.UsersRepository
		expectError string
	}{
		"empty credentials": {
			email:       "",
			password:    "",
			repo:        &mockUsersRepository{},
			expectError: "email and password must not be empty",
		},
		"unknown user": {
			email:    "nobody@example.com",
			password: "super-secret",
			repo: &mockUsersRepository{
				findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
					return nil, repository.ErrUserNotFound
				},
			},
			expectError: "invalid credentials",
		},
		"wrong password": {
			email:    "jane@example.com",
			password: "not-the-password",
			repo: &mockUsersRepository{
				findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
					return user, nil
				},
			},
			expectError: "invalid credentials",
		},
		"success": {
			email:    "jane@example.com",
			password: "super-secret",
			repo: &mockUsersRepository{
				findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
					return user, nil
				},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			svc := NewAuthService(tc.repo, newTestJWTManager())
			token, err := svc.Login(context.Background(), tc.email, tc.password)
			if tc.expectError != "" {
				if err == nil || err.Error() != tc.expectError {
					t.Fatalf("expected error %q, got %v", tc.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if token == "" {
				t.Fatalf("expected a token on successful login")
			}
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	var createdRole string
	repo := &mockUsersRepository{
		create: func(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
			createdRole = role
			if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("super-secret")) != nil {
				t.Fatalf("stored hash does not match the password")
			}
			return &entity.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Role: role}, nil
		},
	}

	svc := NewAuthService(repo, newTestJWTManager())
	token, err := svc.Register(context.Background(), "jane@example.com", "super-secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token for the new user")
	}
	if createdRole != "user" {
		t.Fatalf("expected role user, got %q", createdRole)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := &mockUsersRepository{
		create: func(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
			return nil, repository.ErrEmailDuplicate
		},
	}

	svc := NewAuthService(repo, newTestJWTManager())
	_, err := svc.Register(context.Background(), "jane@example.com", "super-secret")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}
