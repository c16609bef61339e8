package mocks

import (
	"context"

	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/service"
)

// MockImportService is a mock implementation of ImportService
type MockImportService struct {
	ImportFunc func(ctx context.Context, username string, upload *models.Upload) (*models.ImportResult, error)
	Calls      []string
}

// Verify interface compliance
var _ service.ImportService = (*MockImportService)(nil)

func NewMockImportService() *MockImportService {
	return &MockImportService{
		Calls: make([]string, 0),
	}
}

func (m *MockImportService) ImportLeads(ctx context.Context, username string, upload *models.Upload) (*models.ImportResult, error) {
	m.Calls = append(m.Calls, username)
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, username, upload)
	}
	return &models.ImportResult{}, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	RegisterFunc func(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	LoginFunc    func(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// Verify interface compliance
var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &models.User{ID: "test-user-id", UserName: req.UserName}, nil
}

func (m *MockUserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return &models.User{ID: "test-user-id", UserName: req.UserName}, nil
}

// MockLeadService is a mock implementation of LeadService
type MockLeadService struct {
	FindFunc   func(ctx context.Context, username string, filter models.LeadFilter) ([]models.Lead, error)
	LastFilter models.LeadFilter
}

// Verify interface compliance
var _ service.LeadService = (*MockLeadService)(nil)

func NewMockLeadService() *MockLeadService {
	return &MockLeadService{}
}

func (m *MockLeadService) FindLeads(ctx context.Context, username string, filter models.LeadFilter) ([]models.Lead, error) {
	m.LastFilter = filter
	if m.FindFunc != nil {
		return m.FindFunc(ctx, username, filter)
	}
	return []models.Lead{}, nil
}
