package controllers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/models"
	"github.com/blogem/honeypot-telemetry/services"
)

const defaultAPILimit = 100

// listResponse is the envelope for every collection endpoint
type listResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Count   int    `json:"count"`
	Data    any    `json:"data"`
}

type statsResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
	Data    *models.Stats `json:"data"`
}

// APIController serves the read-only query API
type APIController struct {
	logs services.LogQueryService
	log  *zap.Logger
}

// NewAPIController creates a new API controller
func NewAPIController(logs services.LogQueryService, log *zap.Logger) *APIController {
	return &APIController{logs: logs, log: log}
}

// Logs handles GET /api/logs?limit=&ip=
func (c *APIController) Logs(w http.ResponseWriter, r *http.Request) {
	records, err := c.logs.GetLogs(r.Context(), parseLimit(r), r.URL.Query().Get("ip"))
	if err != nil {
		c.fail(w, r, "Failed to fetch logs", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(records), Data: records})
}

// Stats handles GET /api/stats
func (c *APIController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.logs.GetStats(r.Context())
	if err != nil {
		c.log.Error("api query failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, statsResponse{
			Success: false,
			Error:   "Failed to fetch stats",
			Data:    &models.Stats{},
		})
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Data: stats})
}

// Threats handles GET /api/threats?limit=
func (c *APIController) Threats(w http.ResponseWriter, r *http.Request) {
	records, err := c.logs.GetThreats(r.Context(), parseLimit(r))
	if err != nil {
		c.fail(w, r, "Failed to fetch threats", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(records), Data: records})
}

// IPs handles GET /api/ips
func (c *APIController) IPs(w http.ResponseWriter, r *http.Request) {
	rollups, err := c.logs.GetIPRollup(r.Context())
	if err != nil {
		c.fail(w, r, "Failed to fetch IP statistics", err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(rollups), Data: rollups})
}

// fail logs the real error and answers with a generic message and an empty result
func (c *APIController) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	c.log.Error("api query failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, listResponse{
		Success: false,
		Error:   message,
		Count:   0,
		Data:    []any{},
	})
}

func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return defaultAPILimit
	}
	return limit
}
