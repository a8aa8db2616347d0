package handler

import (
	"net/http"
	"strconv"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/apierror"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

const defaultExpiringDays = 90

type MedicineHandler struct {
	medicines service.MedicineService
}

func NewMedicineHandler(medicines service.MedicineService) *MedicineHandler {
	return &MedicineHandler{medicines: medicines}
}

// Create godoc
// @Summary Add a medicine to the catalog
// @Tags medicines
// @Accept json
// @Produce json
// @Param request body dto.MedicineRequest true "Medicine"
// @Success 201 {object} dto.MedicineResponse
// @Security BearerAuth
// @Router /api/medicines [post]
func (h *MedicineHandler) Create(c *gin.Context) {
	var req dto.MedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.medicines.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MedicineHandler) List(c *gin.Context) {
	resp, err := h.medicines.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicineHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resp, err := h.medicines.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicineHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.MedicineRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.medicines.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MedicineHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.medicines.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted"})
}

// Expiring lists medicines expiring within ?days (default 90), soonest first.
func (h *MedicineHandler) Expiring(c *gin.Context) {
	days := defaultExpiringDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, apierror.New("days must be a positive integer"))
			return
		}
		days = parsed
	}
	resp, err := h.medicines.ListExpiring(c.Request.Context(), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
