package mocks

import (
	"context"
	"sync"

	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
// Create enforces unique user names the way the remote store's constraint does.
type MockUserRepository struct {
	mu          sync.Mutex
	Users       map[string]*models.User
	FindError   error
	CreateError error
	CreateCalls int
}

// Verify interface compliance
var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*models.User),
	}
}

// Add stores a user directly, bypassing Create
func (m *MockUserRepository) Add(user *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users[user.UserName] = user
}

func (m *MockUserRepository) FindByName(ctx context.Context, name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindError != nil {
		return nil, m.FindError
	}
	if u, ok := m.Users[name]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *MockUserRepository) FindByCredentials(ctx context.Context, name, password string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FindError != nil {
		return nil, m.FindError
	}
	if u, ok := m.Users[name]; ok && u.Password == password {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	if _, exists := m.Users[user.UserName]; exists {
		return nil, &models.ConflictError{Message: "Username already exists"}
	}
	copied := *user
	m.Users[user.UserName] = &copied
	return &copied, nil
}

// Count returns the number of stored users
func (m *MockUserRepository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Users)
}

// MockLeadRepository is a mock implementation of LeadRepository
type MockLeadRepository struct {
	mu          sync.Mutex
	Leads       []models.Lead
	CreateFunc  func(ctx context.Context, lead *models.Lead) error
	FindError   error
	CreateCalls int
	LastFilter  models.LeadFilter
}

// Verify interface compliance
var _ repository.LeadRepository = (*MockLeadRepository)(nil)

func NewMockLeadRepository() *MockLeadRepository {
	return &MockLeadRepository{
		Leads: make([]models.Lead, 0),
	}
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, lead); err != nil {
			return err
		}
	}
	m.Leads = append(m.Leads, *lead)
	return nil
}

func (m *MockLeadRepository) FindByOwner(ctx context.Context, ownerID string, filter models.LeadFilter) ([]models.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastFilter = filter
	if m.FindError != nil {
		return nil, m.FindError
	}
	result := make([]models.Lead, 0)
	for i := range m.Leads {
		lead := m.Leads[i]
		if lead.UserUUID == ownerID && matchesFilter(&lead, filter) {
			result = append(result, lead)
		}
	}
	return result, nil
}

// Stored returns a copy of every lead written so far
func (m *MockLeadRepository) Stored() []models.Lead {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Lead, len(m.Leads))
	copy(out, m.Leads)
	return out
}

// matchesFilter applies the equality filter the remote store would apply
func matchesFilter(lead *models.Lead, filter models.LeadFilter) bool {
	for field, want := range filter {
		if want != "" && leadField(lead, field) != want {
			return false
		}
	}
	return true
}

func leadField(lead *models.Lead, name string) string {
	switch name {
	case "lead_id":
		return lead.LeadID
	case "lead_name":
		return lead.LeadName
	case "contact_information":
		return lead.ContactInformation
	case "source":
		return lead.Source
	case "interest_level":
		return lead.InterestLevel
	case "status":
		return lead.Status
	case "salesperson":
		return lead.Salesperson
	}
	return ""
}
