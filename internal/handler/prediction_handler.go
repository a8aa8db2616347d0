package handler

import (
	"net/http"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/service"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictions service.PredictionService
}

func NewPredictionHandler(predictions service.PredictionService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions}
}

// Predict recomputes demand forecasts from the full sale history.
func (h *PredictionHandler) Predict(c *gin.Context) {
	resp, message, err := h.predictions.Predict(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if message != "" {
		c.JSON(http.StatusOK, dto.PredictionsUnavailableResponse{Message: message})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Latest returns the most recently persisted forecast run.
func (h *PredictionHandler) Latest(c *gin.Context) {
	resp, err := h.predictions.Latest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
