package account

import (
	"context"

	"hanhtrinhviet/internal/booking"
	"hanhtrinhviet/internal/catalog"
	"hanhtrinhviet/internal/deposit"
	"hanhtrinhviet/internal/wallet"
)

// Snapshot is everything the account page renders in one read: the wallet and
// the three ledgers, each newest first.
type Snapshot struct {
	Wallet          *wallet.Wallet    `json:"wallet"`
	DepositRequests []deposit.Request `json:"deposit_requests"`
	TourBookings    []booking.View    `json:"tour_bookings"`
	StayBookings    []booking.View    `json:"stay_bookings"`
}

type Service interface {
	Snapshot(ctx context.Context, userID int) (*Snapshot, error)
}

type service struct {
	walletRepo  wallet.Repository
	depositRepo deposit.Repository
	bookingRepo booking.Repository
}

func NewService(walletRepo wallet.Repository, depositRepo deposit.Repository, bookingRepo booking.Repository) Service {
	return &service{
		walletRepo:  walletRepo,
		depositRepo: depositRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *service) Snapshot(ctx context.Context, userID int) (*Snapshot, error) {
	w, err := s.walletRepo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	deposits, err := s.depositRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tours, err := s.listViews(ctx, userID, catalog.KindTour)
	if err != nil {
		return nil, err
	}

	stays, err := s.listViews(ctx, userID, catalog.KindStay)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Wallet:          w,
		DepositRequests: deposits,
		TourBookings:    tours,
		StayBookings:    stays,
	}, nil
}

func (s *service) listViews(ctx context.Context, userID int, kind string) ([]booking.View, error) {
	rows, err := s.bookingRepo.ListByUserAndKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	views := make([]booking.View, 0, len(rows))
	for _, row := range rows {
		views = append(views, booking.NewView(row))
	}

	return views, nil
}
