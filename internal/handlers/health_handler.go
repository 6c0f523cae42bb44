package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/models"
	"github.com/Varun5711/authcore/internal/presenter"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// PoolStats is implemented by database.DBManager.
type PoolStats interface {
	Stats() map[string]interface{}
}

type HealthHandler struct {
	db  Pinger
	log *logger.Logger
}

// NewHealthHandler accepts a nil db for the in-memory store.
func NewHealthHandler(db Pinger, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		presenter.JSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("Health check failed: %v", err)
		presenter.JSON(w, http.StatusServiceUnavailable, models.HealthResponse{Status: "unavailable", Database: "down"})
		return
	}

	resp := models.HealthResponse{Status: "ok", Database: "up"}
	if stats, ok := h.db.(PoolStats); ok {
		resp.Pool = stats.Stats()
	}

	presenter.JSON(w, http.StatusOK, resp)
}
