// Package report owns the report lifecycle: ownership-checked create,
// update, delete and retrieval, composed with the evidence pipeline.
package report

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"sira/backend/internal/apperr"
	"sira/backend/internal/models"
	"sira/backend/internal/notify"
	"sira/backend/internal/storage"
	"sira/backend/internal/upload"
)

// Service handles the business logic for incident reports.
type Service struct {
	Storage  storage.Storage
	Pipeline *upload.Pipeline
	Notifier notify.Notifier // optional, may be nil
}

// NewService creates a new report service.
func NewService(s storage.Storage, p *upload.Pipeline, n notify.Notifier) *Service {
	return &Service{Storage: s, Pipeline: p, Notifier: n}
}

// Fields carries the user-editable report fields.
type Fields struct {
	IssueType   string
	Location    string
	Description string
}

// Create runs the evidence pipeline to completion and only then
// persists the report. A failed pipeline means no report: the caller
// never sees a record referencing half of the evidence.
func (s *Service) Create(ctx context.Context, files []upload.StagedFile, fields Fields, ownerID string) (*models.Report, error) {
	if len(files) == 0 {
		return nil, apperr.Validation("no files")
	}
	if err := s.Pipeline.Accept(files); err != nil {
		upload.CleanupStaged(files)
		return nil, err
	}

	urls, err := s.Pipeline.Commit(ctx, files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &models.Report{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Evidence:    urls,
		IssueType:   fields.IssueType,
		Location:    fields.Location,
		Description: fields.Description,
		Status:      models.ReportStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Storage.SaveReport(ctx, report); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		go s.Notifier.ReportCreated(report)
	}
	return report, nil
}

// Update applies a shallow field merge and, when new files are
// supplied, appends their uploaded URLs to the existing evidence
// sequence. Existing entries are never replaced or reordered.
func (s *Service) Update(ctx context.Context, reportID string, files []upload.StagedFile, fields Fields, ownerID string) (*models.Report, error) {
	report, err := s.ownedReport(ctx, reportID, ownerID)
	if err != nil {
		upload.CleanupStaged(files)
		return nil, err
	}

	patch := map[string]interface{}{}
	if fields.IssueType != "" {
		report.IssueType = fields.IssueType
		patch["issue_type"] = fields.IssueType
	}
	if fields.Location != "" {
		report.Location = fields.Location
		patch["location"] = fields.Location
	}
	if fields.Description != "" {
		report.Description = fields.Description
		patch["description"] = fields.Description
	}

	if len(files) > 0 {
		if err := s.Pipeline.Accept(files); err != nil {
			upload.CleanupStaged(files)
			return nil, err
		}
		urls, err := s.Pipeline.Commit(ctx, files)
		if err != nil {
			return nil, err
		}
		report.Evidence = append(report.Evidence, urls...)
		patch["evidence"] = report.Evidence
	}

	if err := s.Storage.UpdateReportFields(ctx, reportID, patch); err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes the report record. Remote evidence cleanup is
// best-effort and does not gate the delete.
func (s *Service) Delete(ctx context.Context, reportID, ownerID string) error {
	report, err := s.ownedReport(ctx, reportID, ownerID)
	if err != nil {
		return err
	}
	if err := s.Storage.DeleteReport(ctx, reportID); err != nil {
		return err
	}

	evidence := report.Evidence
	go func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, url := range evidence {
			if err := s.Pipeline.Store.Delete(cleanupCtx, url); err != nil {
				log.Printf("WARN: failed to remove evidence object %s: %v", url, err)
			}
		}
	}()
	return nil
}

// Get returns every report owned by the account, in insertion order.
// An owner with no reports gets an empty slice, not an error.
func (s *Service) Get(ctx context.Context, ownerID string) ([]models.Report, error) {
	return s.Storage.GetReportsByUser(ctx, ownerID)
}

// AllReports returns every report in the system (admin surface).
func (s *Service) AllReports(ctx context.Context) ([]models.Report, error) {
	return s.Storage.GetAllReports(ctx)
}

// ReportsByUser returns the reports of one account (admin surface).
func (s *Service) ReportsByUser(ctx context.Context, userID string) ([]models.Report, error) {
	return s.Storage.GetReportsByUser(ctx, userID)
}

// UpdateStatus moves a report between triage states (admin surface).
func (s *Service) UpdateStatus(ctx context.Context, reportID string, status models.ReportStatus) (*models.Report, error) {
	if !models.ValidReportStatus(status) {
		return nil, apperr.Validation("invalid report status")
	}
	report, err := s.Storage.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := s.Storage.UpdateReportFields(ctx, reportID, map[string]interface{}{"status": status}); err != nil {
		return nil, err
	}
	report.Status = status
	return report, nil
}

// ownedReport loads a report and enforces that ownerID owns it.
func (s *Service) ownedReport(ctx context.Context, reportID, ownerID string) (*models.Report, error) {
	report, err := s.Storage.GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != ownerID {
		return nil, apperr.Permission("you do not have permission to modify this report")
	}
	return report, nil
}
