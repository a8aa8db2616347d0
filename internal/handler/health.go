package handler

import (
	"net/http"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/worker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	queue *worker.RedisQueue
}

func NewHealthHandler(db *gorm.DB, queue *worker.RedisQueue) *HealthHandler {
	return &HealthHandler{db: db, queue: queue}
}

// Check reports liveness plus dependency status and DLQ depth.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"
	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	dlq := int64(-1)
	queueStatus := "up"
	if n, err := h.queue.DLQLength(c.Request.Context()); err != nil {
		queueStatus = "down"
		status = http.StatusServiceUnavailable
	} else {
		dlq = n
	}

	c.JSON(status, gin.H{
		"status":     map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"database":   dbStatus,
		"queue":      queueStatus,
		"dlq_length": dlq,
	})
}
