package booking

import (
	"context"
	"database/sql"
	"errors"

	"hanhtrinhviet/internal/wallet"

	"github.com/jmoiron/sqlx"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingAlreadyFinal = errors.New("booking already confirmed or cancelled")
	ErrWalletNotFound      = errors.New("wallet not found")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateWithPayment performs the booking purchase as one transaction: lock the
// wallet row, check the balance against the catalog price, debit, insert the
// booking and the ledger entry. Concurrent purchases against the same wallet
// queue on the row lock, so a balance that covers one item can never pay for
// two.
func (r *repository) CreateWithPayment(ctx context.Context, userID, itemID int, itemKind string, price int64) (*Booking, int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var w wallet.Wallet
	err = tx.QueryRowxContext(ctx,
		`SELECT id, user_id, available_balance, frozen_balance, created_at, updated_at
		 FROM wallets
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrWalletNotFound
		}
		return nil, 0, err
	}

	if w.AvailableBalance < price {
		return nil, 0, wallet.ErrInsufficientBalance
	}
	newBalance := w.AvailableBalance - price

	_, err = tx.ExecContext(ctx,
		`UPDATE wallets
		 SET available_balance = $1, updated_at = NOW()
		 WHERE id = $2`,
		newBalance, w.ID,
	)
	if err != nil {
		return nil, 0, err
	}

	var b Booking
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO bookings (user_id, item_id, item_kind, total_amount, status)
		 VALUES ($1, $2, $3, $4, 'pending')
		 RETURNING id, user_id, item_id, item_kind, total_amount, status, created_at`,
		userID, itemID, itemKind, price,
	).StructScan(&b)
	if err != nil {
		return nil, 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallet_transactions (wallet_id, amount, type, balance_after)
		 VALUES ($1, $2, $3, $4)`,
		w.ID, -price, wallet.TxTypeBookingPayment, newBalance,
	)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return &b, newBalance, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, item_id, item_kind, total_amount, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &b, nil
}

// ListByUserAndKind returns the account-page history for one booking kind.
// The catalog join is LEFT so a removed item degrades to a placeholder name
// instead of dropping the row.
func (r *repository) ListByUserAndKind(ctx context.Context, userID int, kind string) ([]BookingWithItem, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.item_id,
			b.item_kind,
			b.total_amount,
			b.status,
			b.created_at,
			COALESCE(i.name, '` + ItemNamePlaceholder + `') AS item_name
		FROM bookings b
		LEFT JOIN catalog_items i ON b.item_id = i.id
		WHERE b.user_id = $1 AND b.item_kind = $2
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithItem
	err := r.db.SelectContext(ctx, &bookings, query, userID, kind)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByItem(ctx context.Context, itemID int) ([]BookingWithItem, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.item_id,
			b.item_kind,
			b.total_amount,
			b.status,
			b.created_at,
			COALESCE(i.name, '` + ItemNamePlaceholder + `') AS item_name
		FROM bookings b
		LEFT JOIN catalog_items i ON b.item_id = i.id
		WHERE b.item_id = $1
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithItem
	err := r.db.SelectContext(ctx, &bookings, query, itemID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// UpdateStatus moves a pending booking to confirmed or cancelled. The status
// guard keeps the transition one-shot, same as the deposit state machine.
func (r *repository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings
		 SET status = $1
		 WHERE id = $2 AND status = 'pending'`,
		status, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingAlreadyFinal
	}

	return nil
}
