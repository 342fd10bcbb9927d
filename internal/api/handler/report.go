package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"sira/backend/internal/apperr"
	"sira/backend/internal/auth"
	"sira/backend/internal/config"
	"sira/backend/internal/report"
	"sira/backend/internal/upload"
)

// CreateReport accepts a multipart form with 1..5 evidence files under
// the "files" field plus the report fields, and runs the full
// upload-then-persist sequence.
func (h *Handler) CreateReport(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no user found"})
		return
	}

	fields, ok := h.reportFields(c, true)
	if !ok {
		return
	}

	files, err := h.stageFiles(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	created, err := h.Reports.Create(c.Request.Context(), files, fields, p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Report created successfully...",
		"data":    created,
	})
}

// MyReports lists the caller's own reports; an empty list is a valid
// answer, distinct from a missing report.
func (h *Handler) MyReports(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no user found"})
		return
	}

	reports, err := h.Reports.Get(c.Request.Context(), p.UserID)
	if err != nil {
		h.respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "data": reports})
}

// UpdateReport merges new field values and appends newly uploaded
// evidence to the caller's report.
func (h *Handler) UpdateReport(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no user found"})
		return
	}

	fields, ok := h.reportFields(c, false)
	if !ok {
		return
	}

	files, err := h.stageFiles(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := h.Reports.Update(c.Request.Context(), c.Param("id"), files, fields, p.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Report updated successfully",
		"data":    updated,
	})
}

// DeleteReport removes the caller's report.
func (h *Handler) DeleteReport(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": "unauthorized, no user found"})
		return
	}

	if err := h.Reports.Delete(c.Request.Context(), c.Param("id"), p.UserID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Report deleted successfully"})
}

// reportFields reads the form fields; when required is set, missing
// values produce the 400 with field detail.
func (h *Handler) reportFields(c *gin.Context, required bool) (report.Fields, bool) {
	fields := report.Fields{
		IssueType:   c.PostForm("issueType"),
		Location:    c.PostForm("location"),
		Description: c.PostForm("description"),
	}
	if !required {
		return fields, true
	}

	var missing []apperr.FieldError
	if fields.IssueType == "" {
		missing = append(missing, apperr.FieldError{Field: "issueType", Message: "issueType is required"})
	}
	if fields.Location == "" {
		missing = append(missing, apperr.FieldError{Field: "location", Message: "location is required"})
	}
	if fields.Description == "" {
		missing = append(missing, apperr.FieldError{Field: "description", Message: "description is required"})
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "Validation Failed", "errors": missing})
		return fields, false
	}
	return fields, true
}

// stageFiles writes every uploaded "files" part into the local staging
// directory and returns their descriptors. Returns an empty slice when
// the form carries no files.
func (h *Handler) stageFiles(c *gin.Context) ([]upload.StagedFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// Не multipart-запит — трактуємо як відсутність файлів.
		return nil, nil
	}

	parts := form.File["files"]
	if len(parts) > config.MaxEvidenceFiles {
		return nil, apperr.Validation(fmt.Sprintf("at most %d files allowed", config.MaxEvidenceFiles))
	}

	staged := make([]upload.StagedFile, 0, len(parts))
	for _, part := range parts {
		name := fmt.Sprintf("files-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), filepath.Ext(part.Filename))
		dst := filepath.Join(h.Cfg.UploadDir, name)
		if err := c.SaveUploadedFile(part, dst); err != nil {
			upload.CleanupStaged(staged)
			return nil, fmt.Errorf("stage file %s: %w", part.Filename, err)
		}
		staged = append(staged, upload.StagedFile{
			LocalPath: dst,
			MimeType:  part.Header.Get("Content-Type"),
			Size:      part.Size,
		})
	}
	return staged, nil
}

// ensureUploadDir створює локальну staging-директорію.
func EnsureUploadDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
