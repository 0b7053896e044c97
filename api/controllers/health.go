package controllers

import (
	"context"
	"net/http"

	"github.com/tcghub/tcghub-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthController reports process and dependency liveness.
type HealthController struct {
	db    pinger
	cache pinger
}

// NewHealthController builds the health controller.
func NewHealthController(db, cache pinger) *HealthController {
	return &HealthController{db: db, cache: cache}
}

// Live always succeeds while the process is up.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready checks the database and cache connections.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok", "cache": "ok"}
	healthy := true

	if c.db != nil {
		if err := c.db.Ping(r.Context()); err != nil {
			checks["database"] = "unreachable"
			healthy = false
		}
	}
	if c.cache != nil {
		if err := c.cache.Ping(r.Context()); err != nil {
			checks["cache"] = "unreachable"
			healthy = false
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	responses.WriteSuccess(w, status, checks)
}
