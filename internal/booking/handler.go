package booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hanhtrinhviet/internal/auth"
	"hanhtrinhviet/internal/catalog"
	"hanhtrinhviet/internal/email"
	"hanhtrinhviet/internal/user"
	"hanhtrinhviet/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, emailService *email.Service) *Handler {
	return &Handler{
		service: NewService(
			NewRepository(db),
			catalog.NewRepository(db),
			user.NewRepository(db),
			emailService,
		),
	}
}

// Book godoc
// @Summary      Book a tour or stay
// @Description  Debits the caller's wallet by the catalog price and creates a pending booking. Fails with 409 when the balance does not cover the price.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      BookRequest  true  "Catalog item to book"
// @Success      201      {object}  BookResponse
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) Book(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.service.Book(c.Request.Context(), userID, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
		case errors.Is(err, wallet.ErrInsufficientBalance):
			c.JSON(http.StatusConflict, gin.H{"error": "Insufficient wallet balance"})
		case errors.Is(err, ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListMyTourBookings godoc
// @Summary      My tour bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   View
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /bookings/tours [get]
func (h *Handler) ListMyTourBookings(c *gin.Context) {
	h.listMine(c, catalog.KindTour)
}

// ListMyStayBookings godoc
// @Summary      My stay bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   View
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /bookings/stays [get]
func (h *Handler) ListMyStayBookings(c *gin.Context) {
	h.listMine(c, catalog.KindStay)
}

func (h *Handler) listMine(c *gin.Context, kind string) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	views, err := h.service.ListMine(c.Request.Context(), userID, kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListByItem godoc
// @Summary      List bookings by catalog item
// @Description  Returns all bookings for one tour or stay. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        itemID  path      int  true  "Catalog item ID"
// @Success      200     {array}   BookingWithItem
// @Failure      400     {object}  gin.H
// @Failure      500     {object}  gin.H
// @Router       /admin/catalog/{itemID}/bookings [get]
func (h *Handler) ListByItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	bookings, err := h.service.ListByItem(c.Request.Context(), itemID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Confirm godoc
// @Summary      Confirm booking
// @Description  Moves a pending booking to confirmed. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/bookings/{bookingID}/confirm [post]
func (h *Handler) Confirm(c *gin.Context) {
	h.transition(c, h.service.Confirm, "Booking confirmed")
}

// Cancel godoc
// @Summary      Cancel booking
// @Description  Moves a pending booking to cancelled. No wallet refund. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	h.transition(c, h.service.Cancel, "Booking cancelled")
}

func (h *Handler) transition(c *gin.Context, op func(ctx context.Context, bookingID int) error, okMessage string) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := op(c.Request.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrBookingAlreadyFinal):
			c.JSON(http.StatusConflict, gin.H{"error": "Booking already confirmed or cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": okMessage})
}
