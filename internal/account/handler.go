package account

import (
	"net/http"

	"hanhtrinhviet/internal/auth"
	"hanhtrinhviet/internal/booking"
	"hanhtrinhviet/internal/deposit"
	"hanhtrinhviet/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		service: NewService(
			wallet.NewRepository(db),
			deposit.NewRepository(db),
			booking.NewRepository(db),
		),
	}
}

// GetSnapshot godoc
// @Summary      Account snapshot
// @Description  Returns the caller's wallet, deposit requests, tour bookings and stay bookings in one read.
// @Tags         account
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Snapshot
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /account [get]
func (h *Handler) GetSnapshot(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	snapshot, err := h.service.Snapshot(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load account"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
