package booking

import (
	"context"
	"errors"

	"hanhtrinhviet/internal/catalog"
	"hanhtrinhviet/internal/email"
	"hanhtrinhviet/internal/metrics"
	"hanhtrinhviet/internal/user"
	"hanhtrinhviet/internal/wallet"
)

type Service interface {
	Book(ctx context.Context, userID, itemID int) (*BookResponse, error)
	Confirm(ctx context.Context, bookingID int) error
	Cancel(ctx context.Context, bookingID int) error
	ListMine(ctx context.Context, userID int, kind string) ([]View, error)
	ListByItem(ctx context.Context, itemID int) ([]BookingWithItem, error)
}

type service struct {
	repo         Repository
	catalogRepo  catalog.Repository
	userRepo     user.Repository
	emailService *email.Service
}

func NewService(
	repo Repository,
	catalogRepo catalog.Repository,
	userRepo user.Repository,
	emailService *email.Service,
) Service {
	return &service{
		repo:         repo,
		catalogRepo:  catalogRepo,
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Book resolves the price from the catalog (never from the caller) and runs
// the check-and-debit purchase. On success the booking starts out pending
// until an operator confirms the itinerary.
func (s *service) Book(ctx context.Context, userID, itemID int) (*BookResponse, error) {
	item, err := s.catalogRepo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	b, balanceRemaining, err := s.repo.CreateWithPayment(ctx, userID, item.ID, item.Kind, item.Price)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientBalance) {
			metrics.RecordBooking("rejected", item.Kind)
		}
		return nil, err
	}

	metrics.RecordBooking(b.Status, item.Kind)

	// Confirmation email is best effort; the purchase already committed.
	if owner, err := s.userRepo.FindByID(ctx, userID); err == nil {
		s.emailService.SendBookingConfirmation(ctx, owner.Email, owner.FullName, item.Name, item.Price)
	}

	return &BookResponse{
		Booking:          b,
		AmountPaid:       item.Price,
		BalanceRemaining: balanceRemaining,
	}, nil
}

func (s *service) Confirm(ctx context.Context, bookingID int) error {
	if _, err := s.repo.GetByID(ctx, bookingID); err != nil {
		return err
	}
	return s.repo.UpdateStatus(ctx, bookingID, StatusConfirmed)
}

// Cancel releases the reservation without refunding the wallet; refunds are
// settled manually by the operator.
func (s *service) Cancel(ctx context.Context, bookingID int) error {
	if _, err := s.repo.GetByID(ctx, bookingID); err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()
	return nil
}

func (s *service) ListMine(ctx context.Context, userID int, kind string) ([]View, error) {
	rows, err := s.repo.ListByUserAndKind(ctx, userID, kind)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewView(row))
	}

	return views, nil
}

func (s *service) ListByItem(ctx context.Context, itemID int) ([]BookingWithItem, error) {
	return s.repo.ListByItem(ctx, itemID)
}
