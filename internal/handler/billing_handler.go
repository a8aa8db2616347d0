package handler

import (
	"net/http"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billing service.BillingService
}

func NewBillingHandler(billing service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// Create godoc
// @Summary Create a GST bill and decrement stock for every line
// @Tags billing
// @Accept json
// @Produce json
// @Param request body dto.CreateBillRequest true "Bill"
// @Success 201 {object} dto.BillResponse
// @Security BearerAuth
// @Router /api/billing [post]
func (h *BillingHandler) Create(c *gin.Context) {
	var req dto.CreateBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.billing.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BillingHandler) List(c *gin.Context) {
	resp, err := h.billing.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.billing.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete reverses the bill: stock is restored before the record is removed.
func (h *BillingHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.billing.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bill deleted and stock restored"})
}

func (h *BillingHandler) Stats(c *gin.Context) {
	resp, err := h.billing.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// InvoicePDF streams the rendered invoice file.
func (h *BillingHandler) InvoicePDF(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	path, err := h.billing.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Type", "application/pdf")
	c.File(path)
}
