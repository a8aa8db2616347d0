package handler

import (
	"net/http"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Sales(c *gin.Context) {
	var filter dto.SalesReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reports.SalesReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) Inventory(c *gin.Context) {
	var filter dto.InventoryReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reports.InventoryReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) Customers(c *gin.Context) {
	var filter dto.CustomerReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.reports.CustomerReport(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
