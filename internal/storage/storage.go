// Package storage defines the persistence boundary and its MongoDB
// implementation. Services depend on the Storage interface only.
package storage

import (
	"context"

	"sira/backend/internal/models"
)

// Storage is the persistence contract the services build on.
//
// Lookup methods return apperr.ErrNotFound-classed errors when the
// record does not exist; SaveUser returns an apperr.ErrConflict-classed
// error on a duplicate email.
type Storage interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// UpdateUserFields applies a partial patch ($set semantics) to one user.
	UpdateUserFields(ctx context.Context, id string, patch map[string]interface{}) error
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteAllUsers(ctx context.Context) (int64, error)

	SaveReport(ctx context.Context, report *models.Report) error
	GetReportByID(ctx context.Context, id string) (*models.Report, error)
	GetReportsByUser(ctx context.Context, userID string) ([]models.Report, error)
	GetAllReports(ctx context.Context) ([]models.Report, error)
	UpdateReportFields(ctx context.Context, id string, patch map[string]interface{}) error
	DeleteReport(ctx context.Context, id string) error
}
