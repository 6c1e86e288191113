package handler

import (
	"net/http"
	"time"

	"github.com/commerce/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Version is set at build time via -ldflags
var Version = "dev"

// SystemHandler serves health and version endpoints
type SystemHandler struct {
	db      *gorm.DB
	started time.Time
}

// NewSystemHandler creates a system handler
func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{db: db, started: time.Now()}
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, dto.OK(gin.H{
		"status":  status,
		"version": Version,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	}))
}
