package deposit

import "time"

// Request statuses. pending is the only non-terminal state; a request
// transitions exactly once, to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Request struct {
	ID          int        `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	Amount      int64      `db:"amount" json:"amount"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time `db:"processed_at" json:"processed_at,omitempty"`
}

// RequestWithUser is the admin-queue row: the request plus the owner's display
// name joined in. UserFullName falls back to a placeholder when the profile
// row is gone.
type RequestWithUser struct {
	Request
	UserFullName string `db:"user_full_name" json:"user_full_name"`
}

// QueueSummary holds the admin dashboard counters.
type QueueSummary struct {
	PendingCount   int   `db:"pending_count" json:"pending_count"`
	TotalCount     int   `db:"total_count" json:"total_count"`
	ApprovedAmount int64 `db:"approved_amount" json:"approved_amount"`
}

type SubmitRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}
