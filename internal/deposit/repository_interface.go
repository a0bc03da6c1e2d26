package deposit

import "context"

type Repository interface {
	Create(ctx context.Context, userID int, amount int64) (*Request, error)
	Approve(ctx context.Context, requestID int) (*Request, error)
	Reject(ctx context.Context, requestID int) (*Request, error)
	ListByUser(ctx context.Context, userID int) ([]Request, error)
	ListAll(ctx context.Context) ([]RequestWithUser, error)
	Summary(ctx context.Context) (*QueueSummary, error)
}
