package booking

import "context"

type Repository interface {
	CreateWithPayment(ctx context.Context, userID, itemID int, itemKind string, price int64) (*Booking, int64, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	ListByUserAndKind(ctx context.Context, userID int, kind string) ([]BookingWithItem, error)
	ListByItem(ctx context.Context, itemID int) ([]BookingWithItem, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}
