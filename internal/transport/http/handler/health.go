package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"referral-system/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbOK := true
	dbMessage := ""
	sqlDB, err := h.app.DB.DB()
	if err != nil {
		dbOK, dbMessage = false, err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbOK, dbMessage = false, err.Error()
	}

	statusCode := http.StatusOK
	if !dbOK {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, gin.H{
		"app":        h.app.Config.App.Name,
		"env":        h.app.Config.App.Env,
		"uptime_sec": int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": gin.H{
			"sqlite": gin.H{"ok": dbOK, "message": dbMessage},
		},
	})
}
