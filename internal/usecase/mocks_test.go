package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mjacademy/registration-service/internal/entity"
	"github.com/mjacademy/registration-service/internal/infra/integration/paystack"
	"github.com/mjacademy/registration-service/internal/infra/queue"
)

// MockProspectRepository
type MockProspectRepository struct {
	mock.Mock
}

func (m *MockProspectRepository) Upsert(ctx context.Context, p *entity.Prospect) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProspectRepository) FindByEmail(ctx context.Context, email string) (*entity.Prospect, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Prospect), args.Error(1)
}

func (m *MockProspectRepository) MarkCompleted(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// MockStudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, s *entity.Student) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStudentRepository) FindByEmail(ctx context.Context, email string) (*entity.Student, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByPaymentReference(ctx context.Context, reference string) (*entity.Student, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context) ([]*entity.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) UpdatePaymentStatus(ctx context.Context, email, reference, status string) error {
	args := m.Called(ctx, email, reference, status)
	return args.Error(0)
}

// MockPaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Record(ctx context.Context, attempt *entity.PaymentAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockPaymentRepository) Resolve(ctx context.Context, reference, status, note string) error {
	args := m.Called(ctx, reference, status, note)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByReference(ctx context.Context, reference string) (*entity.PaymentAttempt, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PaymentAttempt), args.Error(1)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) ValidateConfig() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockPaymentGateway) ValidateEmail(email string) bool {
	return strings.Contains(email, "@")
}

func (m *MockPaymentGateway) PublicKey() string {
	return "pk_test_mock"
}

func (m *MockPaymentGateway) InitializeTransaction(input paystack.InitializeInput) (*paystack.InitializeOutput, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.InitializeOutput), args.Error(1)
}

func (m *MockPaymentGateway) VerifyTransaction(reference string) (*paystack.Outcome, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.Outcome), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishCompletion(ctx context.Context, payload queue.CompletionPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// InMemoryProspectStore backs the idempotence tests: a real (if tiny)
// implementation of the upsert contract, keyed by email.
type InMemoryProspectStore struct {
	mu    sync.Mutex
	items map[string]*entity.Prospect
}

func NewInMemoryProspectStore() *InMemoryProspectStore {
	return &InMemoryProspectStore{items: make(map[string]*entity.Prospect)}
}

func (s *InMemoryProspectStore) Upsert(ctx context.Context, p *entity.Prospect) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.items[p.Email]
	if !ok {
		cp := *p
		s.items[p.Email] = &cp
		return nil
	}

	// Same merge semantics as the SQL upsert: populated fields win, the
	// step pointer only moves forward.
	if p.FullName != "" {
		existing.FullName = p.FullName
	}
	if p.Phone != "" {
		existing.Phone = p.Phone
	}
	existing.IsMuslim = existing.IsMuslim || p.IsMuslim
	if p.FaithConfirmText != "" {
		existing.FaithConfirmText = p.FaithConfirmText
	}
	if p.Program != "" {
		existing.Program = p.Program
	}
	existing.TechTrack = p.TechTrack
	if p.TechSkill != "" {
		existing.TechSkill = p.TechSkill
	}
	if p.AcademicLevel != "" {
		existing.AcademicLevel = p.AcademicLevel
	}
	if len(p.Interests) > 0 {
		existing.Interests = p.Interests
	}
	if p.CurrentStep > existing.CurrentStep {
		existing.CurrentStep = p.CurrentStep
	}
	existing.UpdatedAt = p.UpdatedAt
	return nil
}

func (s *InMemoryProspectStore) FindByEmail(ctx context.Context, email string) (*entity.Prospect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[email]
	if !ok {
		return nil, entity.ErrProspectNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *InMemoryProspectStore) MarkCompleted(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[email]
	if !ok {
		return entity.ErrProspectNotFound
	}
	p.Completed = true
	return nil
}

func (s *InMemoryProspectStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
