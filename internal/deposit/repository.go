package deposit

import (
	"context"
	"database/sql"
	"errors"

	"hanhtrinhviet/internal/wallet"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRequestNotFound  = errors.New("deposit request not found")
	ErrAlreadyProcessed = errors.New("deposit request already processed")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, userID int, amount int64) (*Request, error) {
	query := `
		INSERT INTO deposit_requests (user_id, amount, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, user_id, amount, status, created_at, processed_at
	`

	var req Request
	err := r.db.GetContext(ctx, &req, query, userID, amount)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// Approve moves a pending request to approved and credits the owner's wallet
// in the same transaction. The status filter in the UPDATE is the re-entrancy
// guard: a request that already left pending matches zero rows, so a second
// approval can never credit the wallet twice.
func (r *repository) Approve(ctx context.Context, requestID int) (*Request, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var req Request
	err = tx.QueryRowxContext(ctx, `
		UPDATE deposit_requests
		SET status = 'approved', processed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, user_id, amount, status, created_at, processed_at
	`, requestID).StructScan(&req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.classifyMiss(ctx, requestID)
		}
		return nil, err
	}

	var w wallet.Wallet
	err = tx.QueryRowxContext(ctx, `
		UPDATE wallets
		SET available_balance = available_balance + $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING id, user_id, available_balance, frozen_balance, created_at, updated_at
	`, req.Amount, req.UserID).StructScan(&w)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (wallet_id, amount, type, balance_after)
		VALUES ($1, $2, $3, $4)
	`, w.ID, req.Amount, wallet.TxTypeDepositApproved, w.AvailableBalance)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &req, nil
}

// Reject marks a pending request rejected. No balance change.
func (r *repository) Reject(ctx context.Context, requestID int) (*Request, error) {
	var req Request
	err := r.db.QueryRowxContext(ctx, `
		UPDATE deposit_requests
		SET status = 'rejected', processed_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, user_id, amount, status, created_at, processed_at
	`, requestID).StructScan(&req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.classifyMiss(ctx, requestID)
		}
		return nil, err
	}

	return &req, nil
}

// classifyMiss tells a missing request apart from one that is already terminal.
func (r *repository) classifyMiss(ctx context.Context, requestID int) error {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM deposit_requests WHERE id = $1)`, requestID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRequestNotFound
	}
	return ErrAlreadyProcessed
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Request, error) {
	query := `
		SELECT id, user_id, amount, status, created_at, processed_at
		FROM deposit_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var reqs []Request
	err := r.db.SelectContext(ctx, &reqs, query, userID)
	if err != nil {
		return nil, err
	}

	return reqs, nil
}

func (r *repository) ListAll(ctx context.Context) ([]RequestWithUser, error) {
	query := `
		SELECT
			d.id,
			d.user_id,
			d.amount,
			d.status,
			d.created_at,
			d.processed_at,
			COALESCE(u.full_name, 'Khách hàng') AS user_full_name
		FROM deposit_requests d
		LEFT JOIN users u ON d.user_id = u.id
		ORDER BY d.created_at DESC
	`

	var reqs []RequestWithUser
	err := r.db.SelectContext(ctx, &reqs, query)
	if err != nil {
		return nil, err
	}

	return reqs, nil
}

func (r *repository) Summary(ctx context.Context) (*QueueSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending')                    AS pending_count,
			COUNT(*)                                                      AS total_count,
			COALESCE(SUM(amount) FILTER (WHERE status = 'approved'), 0)   AS approved_amount
		FROM deposit_requests
	`

	var s QueueSummary
	err := r.db.GetContext(ctx, &s, query)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
