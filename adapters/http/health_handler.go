package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is the slice of pgxpool.Pool the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports liveness plus database reachability. Store trouble shows up
// in the body; the endpoint itself always answers 200.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{
		"status":   "ok",
		"message":  "Aisle Scan API is running",
		"database": "connected",
	}
	if err := h.db.Ping(ctx); err != nil {
		body["database"] = "disconnected"
	}

	c.JSON(http.StatusOK, body)
}
