package deposit

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hanhtrinhviet/internal/auth"
	"hanhtrinhviet/internal/email"
	"hanhtrinhviet/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB, emailService *email.Service, minAmount int64) *Handler {
	return &Handler{
		service: NewService(NewRepository(db), user.NewRepository(db), emailService, minAmount),
	}
}

// Submit godoc
// @Summary      Submit deposit request
// @Description  Queues a bank-transfer deposit claim for admin review. The wallet is credited only after approval.
// @Tags         deposits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      SubmitRequest  true  "Deposit amount in VND"
// @Success      201      {object}  Request
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /deposits [post]
func (h *Handler) Submit(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, ErrAmountTooSmall) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Deposit amount is below the 500,000 VND minimum"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit deposit request"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListMine godoc
// @Summary      My deposit requests
// @Tags         deposits
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Request
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /deposits [get]
func (h *Handler) ListMine(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reqs, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposit requests"})
		return
	}

	c.JSON(http.StatusOK, reqs)
}

// AdminQueue godoc
// @Summary      Deposit approval queue
// @Description  Returns every deposit request with the owner's name and summary counters. Admin only.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/deposits [get]
func (h *Handler) AdminQueue(c *gin.Context) {
	role, _ := auth.GetUserRole(c)

	reqs, summary, err := h.service.AdminQueue(c.Request.Context(), role)
	if err != nil {
		if errors.Is(err, ErrNotAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deposit queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": reqs,
		"summary":  summary,
	})
}

// Approve godoc
// @Summary      Approve deposit request
// @Description  Credits the owner's wallet by the request amount. A request can be approved at most once.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Deposit request ID"
// @Success      200        {object}  Request
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/deposits/{requestID}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	h.process(c, h.service.Approve)
}

// Reject godoc
// @Summary      Reject deposit request
// @Description  Marks the request rejected. No balance change.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        requestID  path      int  true  "Deposit request ID"
// @Success      200        {object}  Request
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /admin/deposits/{requestID}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	h.process(c, h.service.Reject)
}

func (h *Handler) process(c *gin.Context, op func(ctx context.Context, callerRole string, requestID int) (*Request, error)) {
	requestID, err := strconv.Atoi(c.Param("requestID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	role, _ := auth.GetUserRole(c)

	req, err := op(c.Request.Context(), role, requestID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAdmin):
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Deposit request not found"})
		case errors.Is(err, ErrAlreadyProcessed):
			c.JSON(http.StatusConflict, gin.H{"error": "Deposit request already processed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process deposit request"})
		}
		return
	}

	c.JSON(http.StatusOK, req)
}
