package user

import (
	"context"
	"testing"

	"hanhtrinhviet/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, fullName, email, phone, passwordHash, role string) (*User, error) {
	args := m.Called(ctx, fullName, email, phone, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		repo.On("EmailExists", ctx, "lan@example.com").Return(false, nil)
		repo.On("Create", ctx, "Trần Thị Lan", "lan@example.com", "0901234567", mock.AnythingOfType("string"), auth.RoleUser).
			Return(&User{ID: 1, FullName: "Trần Thị Lan", Email: "lan@example.com", Role: auth.RoleUser}, nil)

		user, access, refresh, err := svc.Register(ctx, RegisterRequest{
			FullName: "Trần Thị Lan",
			Email:    "lan@example.com",
			Phone:    "0901234567",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, auth.RoleUser, user.Role)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		repo.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		repo.On("EmailExists", ctx, "taken@example.com").Return(true, nil)

		_, _, _, err := svc.Register(ctx, RegisterRequest{
			FullName: "Someone",
			Email:    "taken@example.com",
			Phone:    "0900000000",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrEmailExists)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	passwordHash, _ := auth.HashPassword("password123")

	t.Run("Successful login", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", ctx, "lan@example.com").
			Return(&User{ID: 1, Email: "lan@example.com", PasswordHash: passwordHash, Role: auth.RoleUser}, nil)

		user, access, refresh, err := svc.Login(ctx, LoginRequest{
			Email:    "lan@example.com",
			Password: "password123",
		})

		require.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
	})

	t.Run("Wrong password", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", ctx, "lan@example.com").
			Return(&User{ID: 1, Email: "lan@example.com", PasswordHash: passwordHash}, nil)

		_, _, _, err := svc.Login(ctx, LoginRequest{
			Email:    "lan@example.com",
			Password: "wrong-password",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, ErrUserNotFound)

		_, _, _, err := svc.Login(ctx, LoginRequest{
			Email:    "nobody@example.com",
			Password: "password123",
		})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful refresh", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		refresh, err := auth.GenerateRefreshToken(5, "lan@example.com", auth.RoleUser, testSecret)
		require.NoError(t, err)

		repo.On("FindByID", ctx, 5).
			Return(&User{ID: 5, Email: "lan@example.com", Role: auth.RoleUser}, nil)

		newAccess, user, err := svc.RefreshToken(ctx, refresh)
		require.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.Equal(t, 5, user.ID)
	})

	t.Run("Access token rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		svc := NewService(repo, testSecret)

		access, err := auth.GenerateAccessToken(5, "lan@example.com", auth.RoleUser, testSecret)
		require.NoError(t, err)

		_, _, err = svc.RefreshToken(ctx, access)
		assert.ErrorIs(t, err, auth.ErrInvalidTokenType)
	})
}
