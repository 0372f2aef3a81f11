package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/scheduling-api/internal/audit"
	"github.com/BruksfildServices01/scheduling-api/internal/httperr"
	"github.com/BruksfildServices01/scheduling-api/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditQuerier interface {
	Query(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs AuditQuerier
}

func NewAuditLogsHandler(logs AuditQuerier) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	q.Normalize()

	if v := c.Query("entity_key"); v != "" {
		key, err := parseKey(v)
		if err != nil {
			httperr.BadRequest(c, "invalid_entity_key", "entity_key "+err.Error())
			return
		}
		q.EntityKey = &key
	}

	// --------------------------------------------------
	// Período (datas inclusivas, formato 2006-01-02)
	// --------------------------------------------------

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.DateOnly, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "from deve estar no formato 2006-01-02.")
			return
		}
		q.From = &from
	}

	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.DateOnly, v)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "to deve estar no formato 2006-01-02.")
			return
		}
		to = to.Add(24 * time.Hour)
		q.To = &to
	}

	logs, total, err := h.logs.Query(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, "audit_log", err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
		"logs":  logs,
	})
}
