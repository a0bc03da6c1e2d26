package deposit

import (
	"context"
	"errors"
	"fmt"

	"hanhtrinhviet/internal/auth"
	"hanhtrinhviet/internal/email"
	"hanhtrinhviet/internal/metrics"
	"hanhtrinhviet/internal/user"
)

var (
	ErrAmountTooSmall = errors.New("deposit amount below minimum")
	ErrNotAdmin       = errors.New("admin role required")
)

type Service interface {
	Submit(ctx context.Context, userID int, amount int64) (*Request, error)
	Approve(ctx context.Context, callerRole string, requestID int) (*Request, error)
	Reject(ctx context.Context, callerRole string, requestID int) (*Request, error)
	ListByUser(ctx context.Context, userID int) ([]Request, error)
	AdminQueue(ctx context.Context, callerRole string) ([]RequestWithUser, *QueueSummary, error)
}

type service struct {
	repo         Repository
	userRepo     user.Repository
	emailService *email.Service
	minAmount    int64
}

func NewService(repo Repository, userRepo user.Repository, emailService *email.Service, minAmount int64) Service {
	return &service{
		repo:         repo,
		userRepo:     userRepo,
		emailService: emailService,
		minAmount:    minAmount,
	}
}

// Submit queues a bank-transfer claim for admin review. It never touches the
// wallet.
func (s *service) Submit(ctx context.Context, userID int, amount int64) (*Request, error) {
	if amount < s.minAmount {
		return nil, ErrAmountTooSmall
	}

	req, err := s.repo.Create(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	metrics.RecordDepositRequest(StatusPending)
	return req, nil
}

func (s *service) Approve(ctx context.Context, callerRole string, requestID int) (*Request, error) {
	if callerRole != auth.RoleAdmin {
		return nil, ErrNotAdmin
	}

	req, err := s.repo.Approve(ctx, requestID)
	if err != nil {
		return nil, err
	}

	metrics.RecordDepositRequest(StatusApproved)

	// Best effort; the approval already committed.
	if owner, err := s.userRepo.FindByID(ctx, req.UserID); err == nil {
		s.emailService.SendDepositApproved(ctx, owner.Email, owner.FullName, req.Amount)
	}

	return req, nil
}

func (s *service) Reject(ctx context.Context, callerRole string, requestID int) (*Request, error) {
	if callerRole != auth.RoleAdmin {
		return nil, ErrNotAdmin
	}

	req, err := s.repo.Reject(ctx, requestID)
	if err != nil {
		return nil, err
	}

	metrics.RecordDepositRequest(StatusRejected)

	if owner, err := s.userRepo.FindByID(ctx, req.UserID); err == nil {
		s.emailService.Send(ctx, owner.Email, owner.FullName,
			"Yêu cầu nạp tiền bị từ chối",
			fmt.Sprintf("Yêu cầu nạp %d đ của bạn đã bị từ chối. Vui lòng liên hệ hỗ trợ.", req.Amount))
	}

	return req, nil
}

func (s *service) ListByUser(ctx context.Context, userID int) ([]Request, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) AdminQueue(ctx context.Context, callerRole string) ([]RequestWithUser, *QueueSummary, error) {
	if callerRole != auth.RoleAdmin {
		return nil, nil, ErrNotAdmin
	}

	reqs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, nil, err
	}

	return reqs, summary, nil
}
