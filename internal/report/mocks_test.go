package report_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/stretchr/testify/mock"

	"sira/backend/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUserFields(ctx context.Context, id string, patch map[string]interface{}) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStorage) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) DeleteAllUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SaveReport(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockStorage) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) GetReportsByUser(ctx context.Context, userID string) ([]models.Report, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) GetAllReports(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockStorage) UpdateReportFields(ctx context.Context, id string, patch map[string]interface{}) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MockStorage) DeleteReport(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeStore is an in-memory object store; paths in failOn error out.
type fakeStore struct {
	mu      sync.Mutex
	failOn  map[string]bool
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{failOn: make(map[string]bool)}
}

func (f *fakeStore) Upload(_ context.Context, localPath, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn[localPath] {
		return "", errors.New("upload failed")
	}
	return "https://store.example/reports/" + filepath.Base(localPath), nil
}

func (f *fakeStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}
