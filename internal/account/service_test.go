package account

import (
	"context"
	"testing"

	"hanhtrinhviet/internal/booking"
	"hanhtrinhviet/internal/catalog"
	"hanhtrinhviet/internal/deposit"
	"hanhtrinhviet/internal/wallet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletRepo struct{ mock.Mock }

func (m *MockWalletRepo) GetOrCreateWallet(ctx context.Context, userID int) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepo) AddTransaction(ctx context.Context, userID int, amount int64, txType string) error {
	return m.Called(ctx, userID, amount, txType).Error(0)
}

func (m *MockWalletRepo) GetTransactions(ctx context.Context, userID int, limit, offset int) ([]wallet.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]wallet.Transaction), args.Error(1)
}

type MockDepositRepo struct{ mock.Mock }

func (m *MockDepositRepo) Create(ctx context.Context, userID int, amount int64) (*deposit.Request, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deposit.Request), args.Error(1)
}

func (m *MockDepositRepo) Approve(ctx context.Context, requestID int) (*deposit.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deposit.Request), args.Error(1)
}

func (m *MockDepositRepo) Reject(ctx context.Context, requestID int) (*deposit.Request, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deposit.Request), args.Error(1)
}

func (m *MockDepositRepo) ListByUser(ctx context.Context, userID int) ([]deposit.Request, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]deposit.Request), args.Error(1)
}

func (m *MockDepositRepo) ListAll(ctx context.Context) ([]deposit.RequestWithUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]deposit.RequestWithUser), args.Error(1)
}

func (m *MockDepositRepo) Summary(ctx context.Context) (*deposit.QueueSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*deposit.QueueSummary), args.Error(1)
}

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) CreateWithPayment(ctx context.Context, userID, itemID int, itemKind string, price int64) (*booking.Booking, int64, error) {
	args := m.Called(ctx, userID, itemID, itemKind, price)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*booking.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByUserAndKind(ctx context.Context, userID int, kind string) ([]booking.BookingWithItem, error) {
	args := m.Called(ctx, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.BookingWithItem), args.Error(1)
}

func (m *MockBookingRepo) ListByItem(ctx context.Context, itemID int) ([]booking.BookingWithItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]booking.BookingWithItem), args.Error(1)
}

func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()

	walletRepo := new(MockWalletRepo)
	depositRepo := new(MockDepositRepo)
	bookingRepo := new(MockBookingRepo)
	svc := NewService(walletRepo, depositRepo, bookingRepo)

	walletRepo.On("GetOrCreateWallet", ctx, 1).
		Return(&wallet.Wallet{ID: 10, UserID: 1, AvailableBalance: 500000}, nil)
	depositRepo.On("ListByUser", ctx, 1).
		Return([]deposit.Request{{ID: 3, Status: deposit.StatusApproved, Amount: 4000000}}, nil)
	bookingRepo.On("ListByUserAndKind", ctx, 1, catalog.KindTour).
		Return([]booking.BookingWithItem{
			{Booking: booking.Booking{ID: 12, ItemKind: catalog.KindTour, Status: booking.StatusConfirmed}, ItemName: "Tour Đà Lạt 3N2Đ"},
		}, nil)
	bookingRepo.On("ListByUserAndKind", ctx, 1, catalog.KindStay).
		Return([]booking.BookingWithItem{
			{Booking: booking.Booking{ID: 14, ItemKind: catalog.KindStay, Status: booking.StatusPending}, ItemName: booking.ItemNamePlaceholder},
		}, nil)

	snap, err := svc.Snapshot(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(500000), snap.Wallet.AvailableBalance)
	require.Len(t, snap.DepositRequests, 1)

	require.Len(t, snap.TourBookings, 1)
	assert.Equal(t, "TOUR-12", snap.TourBookings[0].Reference)
	assert.Equal(t, "completed", snap.TourBookings[0].DisplayStatus)

	require.Len(t, snap.StayBookings, 1)
	assert.Equal(t, "ROOM-14", snap.StayBookings[0].Reference)
	assert.Equal(t, "pending", snap.StayBookings[0].DisplayStatus)
	assert.Equal(t, booking.ItemNamePlaceholder, snap.StayBookings[0].ItemName)
}

func TestSnapshotEmptyAccount(t *testing.T) {
	ctx := context.Background()

	walletRepo := new(MockWalletRepo)
	depositRepo := new(MockDepositRepo)
	bookingRepo := new(MockBookingRepo)
	svc := NewService(walletRepo, depositRepo, bookingRepo)

	walletRepo.On("GetOrCreateWallet", ctx, 2).
		Return(&wallet.Wallet{ID: 11, UserID: 2}, nil)
	depositRepo.On("ListByUser", ctx, 2).Return([]deposit.Request{}, nil)
	bookingRepo.On("ListByUserAndKind", ctx, 2, catalog.KindTour).Return([]booking.BookingWithItem{}, nil)
	bookingRepo.On("ListByUserAndKind", ctx, 2, catalog.KindStay).Return([]booking.BookingWithItem{}, nil)

	snap, err := svc.Snapshot(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, snap.DepositRequests)
	assert.Empty(t, snap.TourBookings)
	assert.Empty(t, snap.StayBookings)
	assert.Equal(t, int64(0), snap.Wallet.AvailableBalance)
}
