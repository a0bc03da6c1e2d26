package booking

import (
	"fmt"
	"time"

	"hanhtrinhviet/internal/catalog"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// ItemNamePlaceholder is shown when the booked catalog item has since been
// removed or renamed. The read must not fail because of a dead join.
const ItemNamePlaceholder = "Sản phẩm không còn trong danh mục"

// ItemKind is denormalized onto the row at purchase time so account history
// still splits into tours and stays after a catalog item is removed.
type Booking struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	ItemID      int       `db:"item_id" json:"item_id"`
	ItemKind    string    `db:"item_kind" json:"item_kind"`
	TotalAmount int64     `db:"total_amount" json:"total_amount"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// BookingWithItem joins in what the account page displays.
type BookingWithItem struct {
	Booking
	ItemName string `db:"item_name" json:"item_name"`
}

// View is the display projection of a booking row: a synthetic reference
// string and a two-state display status regardless of the internal lifecycle.
type View struct {
	BookingWithItem
	Reference     string `json:"reference"`
	DisplayStatus string `json:"display_status"`
}

func NewView(b BookingWithItem) View {
	prefix := "TOUR"
	if b.ItemKind == catalog.KindStay {
		prefix = "ROOM"
	}

	displayStatus := "pending"
	if b.Status == StatusConfirmed {
		displayStatus = "completed"
	}

	return View{
		BookingWithItem: b,
		Reference:       fmt.Sprintf("%s-%d", prefix, b.ID),
		DisplayStatus:   displayStatus,
	}
}

type BookRequest struct {
	ItemID int `json:"item_id" binding:"required"`
}

type BookResponse struct {
	Booking          *Booking `json:"booking"`
	AmountPaid       int64    `json:"amount_paid"`
	BalanceRemaining int64    `json:"balance_remaining"`
}
