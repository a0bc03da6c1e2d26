package wallet

import "time"

// Amounts are whole VND. There is no minor unit.
type Wallet struct {
	ID               int       `db:"id" json:"id"`
	UserID           int       `db:"user_id" json:"user_id"`
	AvailableBalance int64     `db:"available_balance" json:"available_balance"`
	FrozenBalance    int64     `db:"frozen_balance" json:"frozen_balance"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction types recorded in the wallet ledger.
const (
	TxTypeDepositApproved = "deposit_approved"
	TxTypeBookingPayment  = "booking_payment"
)

type Transaction struct {
	ID           int       `db:"id" json:"id"`
	WalletID     int       `db:"wallet_id" json:"wallet_id"`
	Amount       int64     `db:"amount" json:"amount"`
	Type         string    `db:"type" json:"type"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
