package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo: NewRepository(db),
	}
}

// ListTours godoc
// @Summary      List tours
// @Description  Returns the bookable tour catalog with server-side prices.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   Item
// @Failure      500  {object}  gin.H
// @Router       /tours [get]
func (h *Handler) ListTours(c *gin.Context) {
	items, err := h.repo.ListByKind(c.Request.Context(), KindTour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tours"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// ListStays godoc
// @Summary      List stays
// @Description  Returns the bookable accommodation catalog.
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   Item
// @Failure      500  {object}  gin.H
// @Router       /stays [get]
func (h *Handler) ListStays(c *gin.Context) {
	items, err := h.repo.ListByKind(c.Request.Context(), KindStay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stays"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary      Catalog item detail
// @Tags         catalog
// @Produce      json
// @Param        itemID  path      int  true  "Catalog item ID"
// @Success      200     {object}  Item
// @Failure      400     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /catalog/{itemID} [get]
func (h *Handler) GetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.repo.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Catalog item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItem godoc
// @Summary      Create catalog item
// @Description  Adds a tour or stay to the catalog. Admin only.
// @Tags         catalog
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateItemRequest  true  "Catalog item"
// @Success      201      {object}  Item
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/catalog [post]
func (h *Handler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.repo.CreateItem(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}
