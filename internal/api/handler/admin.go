package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sira/backend/internal/models"
)

// AllReports returns every report in the system for the admin
// dashboard (served through the short-lived listing cache).
func (h *Handler) AllReports(c *gin.Context) {
	reports, err := h.Reports.AllReports(c.Request.Context())
	if err != nil {
		h.respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": reports})
}

type statusRequest struct {
	Status models.ReportStatus `json:"status" binding:"required"`
}

// UpdateReportStatus moves a report between triage states.
func (h *Handler) UpdateReportStatus(c *gin.Context) {
	var req statusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	updated, err := h.Reports.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Report status updated",
		"data":    updated,
	})
}

// UserReports lists the reports of one account.
func (h *Handler) UserReports(c *gin.Context) {
	reports, err := h.Reports.ReportsByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": reports})
}
