package deposit

import (
	"context"
	"errors"
	"testing"

	"hanhtrinhviet/internal/auth"
	"hanhtrinhviet/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testMinDeposit = int64(500000)

type MockDepositRepo struct{ mock.Mock }

func (m *MockDepositRepo) Create(ctx context.Context, userID int, amount int64) (*Request, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockDepositRepo) Approve(ctx context.Context, requestID int) (*Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockDepositRepo) Reject(ctx context.Context, requestID int) (*Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockDepositRepo) ListByUser(ctx context.Context, userID int) ([]Request, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockDepositRepo) ListAll(ctx context.Context) ([]RequestWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RequestWithUser), args.Error(1)
}

func (m *MockDepositRepo) Summary(ctx context.Context) (*QueueSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*QueueSummary), args.Error(1)
}

type MockUserRepo struct{ mock.Mock }

func (m *MockUserRepo) Create(ctx context.Context, fullName, email, phone, passwordHash, role string) (*user.User, error) {
	args := m.Called(ctx, fullName, email, phone, passwordHash, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestService(repo Repository, userRepo user.Repository) Service {
	return NewService(repo, userRepo, nil, testMinDeposit)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Amount at minimum is accepted", func(t *testing.T) {
		repo := new(MockDepositRepo)
		svc := newTestService(repo, new(MockUserRepo))

		repo.On("Create", ctx, 1, testMinDeposit).
			Return(&Request{ID: 1, UserID: 1, Amount: testMinDeposit, Status: StatusPending}, nil)

		req, err := svc.Submit(ctx, 1, testMinDeposit)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, req.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Amount below minimum is refused", func(t *testing.T) {
		repo := new(MockDepositRepo)
		svc := newTestService(repo, new(MockUserRepo))

		_, err := svc.Submit(ctx, 1, 499999)
		assert.ErrorIs(t, err, ErrAmountTooSmall)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestApproveRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockDepositRepo)
	svc := newTestService(repo, new(MockUserRepo))

	_, err := svc.Approve(ctx, auth.RoleUser, 1)
	assert.ErrorIs(t, err, ErrNotAdmin)
	repo.AssertNotCalled(t, "Approve")

	_, err = svc.Reject(ctx, auth.RoleUser, 1)
	assert.ErrorIs(t, err, ErrNotAdmin)
	repo.AssertNotCalled(t, "Reject")
}

func TestApproveAsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("Pending request is approved", func(t *testing.T) {
		repo := new(MockDepositRepo)
		userRepo := new(MockUserRepo)
		svc := newTestService(repo, userRepo)

		repo.On("Approve", ctx, 1).
			Return(&Request{ID: 1, UserID: 3, Amount: 4000000, Status: StatusApproved}, nil)
		// Owner lookup failing only skips the notification.
		userRepo.On("FindByID", ctx, 3).Return(nil, errors.New("gone"))

		req, err := svc.Approve(ctx, auth.RoleAdmin, 1)
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, req.Status)
		repo.AssertExpectations(t)
	})

	t.Run("Second approval conflicts", func(t *testing.T) {
		repo := new(MockDepositRepo)
		svc := newTestService(repo, new(MockUserRepo))

		repo.On("Approve", ctx, 1).Return(nil, ErrAlreadyProcessed)

		_, err := svc.Approve(ctx, auth.RoleAdmin, 1)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("Unknown request", func(t *testing.T) {
		repo := new(MockDepositRepo)
		svc := newTestService(repo, new(MockUserRepo))

		repo.On("Approve", ctx, 404).Return(nil, ErrRequestNotFound)

		_, err := svc.Approve(ctx, auth.RoleAdmin, 404)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestAdminQueue(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns queue and summary", func(t *testing.T) {
		repo := new(MockDepositRepo)
		svc := newTestService(repo, new(MockUserRepo))

		repo.On("ListAll", ctx).Return([]RequestWithUser{
			{Request: Request{ID: 2, Status: StatusPending}, UserFullName: "Trần Thị Lan"},
		}, nil)
		repo.On("Summary", ctx).Return(&QueueSummary{PendingCount: 1, TotalCount: 5, ApprovedAmount: 9000000}, nil)

		reqs, summary, err := svc.AdminQueue(ctx, auth.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, 1, summary.PendingCount)
	})

	t.Run("Non-admin refused", func(t *testing.T) {
		repo := new(MockDepositRepo)
		svc := newTestService(repo, new(MockUserRepo))

		_, _, err := svc.AdminQueue(ctx, auth.RoleUser)
		assert.ErrorIs(t, err, ErrNotAdmin)
		repo.AssertNotCalled(t, "ListAll")
	})
}
