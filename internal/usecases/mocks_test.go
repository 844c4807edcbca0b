package usecases_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"vendor-onboarding.backend/internal/domain/entities"
	domainerrors "vendor-onboarding.backend/internal/domain/errors"
	"vendor-onboarding.backend/internal/domain/repositories"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// passthroughUoW runs fn directly, for tests that do not assert on transactions
type passthroughUoW struct{}

func (passthroughUoW) Do(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }
func (passthroughUoW) WithLock(ctx context.Context) context.Context                { return ctx }

// Mock VendorStatusRepository
type MockVendorStatusRepository struct {
	mock.Mock
}

func (m *MockVendorStatusRepository) GetByVendorID(ctx context.Context, vendorID string) (*entities.VendorStatusRecord, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VendorStatusRecord), args.Error(1)
}

func (m *MockVendorStatusRepository) LinkSubmission(ctx context.Context, link repositories.StatusLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockVendorStatusRepository) Upsert(ctx context.Context, vendorID string, status entities.VendorStatus) error {
	args := m.Called(ctx, vendorID, status)
	return args.Error(0)
}

// Mock MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetByTaxDocument(ctx context.Context, cpfCnpj string) (*entities.Merchant, error) {
	args := m.Called(ctx, cpfCnpj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

// Mock EquipmentRepository
type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) CreateProfile(ctx context.Context, profile *entities.EquipmentProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockEquipmentRepository) UpdateProfile(ctx context.Context, profile *entities.EquipmentProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetProfile(ctx context.Context, id uuid.UUID) (*entities.EquipmentProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.EquipmentProfile), args.Error(1)
}

func (m *MockEquipmentRepository) ListItems(ctx context.Context, profileID uuid.UUID) ([]*entities.EquipmentItem, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.EquipmentItem), args.Error(1)
}

func (m *MockEquipmentRepository) ReplaceItems(ctx context.Context, profileID uuid.UUID, items []*entities.EquipmentItem) error {
	args := m.Called(ctx, profileID, items)
	return args.Error(0)
}

// Mock MenuRepository
type MockMenuRepository struct {
	mock.Mock
}

func (m *MockMenuRepository) InsertSections(ctx context.Context, sections []entities.MenuSection) error {
	args := m.Called(ctx, sections)
	return args.Error(0)
}

func (m *MockMenuRepository) ReplaceMenu(ctx context.Context, merchantID uuid.UUID, sections []entities.MenuSection) error {
	args := m.Called(ctx, merchantID, sections)
	return args.Error(0)
}

func (m *MockMenuRepository) ListCategories(ctx context.Context, merchantID uuid.UUID) ([]*entities.MenuCategory, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MenuCategory), args.Error(1)
}

func (m *MockMenuRepository) ListProducts(ctx context.Context, categoryIDs []uuid.UUID) ([]*entities.MenuProduct, error) {
	args := m.Called(ctx, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MenuProduct), args.Error(1)
}

// Mock BannerRepository
type MockBannerRepository struct {
	mock.Mock
}

func (m *MockBannerRepository) Update(ctx context.Context, banner *entities.VendorBanner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) Upsert(ctx context.Context, banner *entities.VendorBanner) error {
	args := m.Called(ctx, banner)
	return args.Error(0)
}

func (m *MockBannerRepository) GetByMerchantID(ctx context.Context, merchantID uuid.UUID) (*entities.VendorBanner, error) {
	args := m.Called(ctx, merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VendorBanner), args.Error(1)
}

// Mock ProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) FindByDocument(ctx context.Context, doc string) (*entities.SheetRow, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SheetRow), args.Error(1)
}

func (m *MockProspectRepository) Refresh(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// memorySessionStore is an in-memory WizardSessionRepository. Sessions are
// stored by value so callers cannot mutate what was saved.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]entities.WizardSession
	locks    map[string]bool
	saves    int
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]entities.WizardSession{}, locks: map[string]bool{}}
}

func (s *memorySessionStore) Save(_ context.Context, session *entities.WizardSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	s.saves++
	return nil
}

func (s *memorySessionStore) Get(_ context.Context, id string) (*entities.WizardSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domainerrors.ErrSessionNotFound
	}
	return &session, nil
}

func (s *memorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) AcquireSubmitLock(_ context.Context, id string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[id] {
		return false, nil
	}
	s.locks[id] = true
	return true, nil
}

func (s *memorySessionStore) ReleaseSubmitLock(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
	return nil
}
