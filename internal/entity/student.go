package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrEmailAlreadyExists   = errors.New("a student with this email already exists")
	ErrStudentAlreadyExists = errors.New("a student with this payment reference already exists")
)

// Student is the finalized, paid registration. Created exactly once, on a
// verified payment; admin tooling may update it afterwards.
type Student struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name"`
	Phone            string    `json:"phone"`
	Program          string    `json:"program"`
	TechTrack        bool      `json:"tech_track"`
	TechSkill        string    `json:"tech_skill,omitempty"`
	AcademicLevel    string    `json:"academic_level,omitempty"`
	Interests        []string  `json:"interests,omitempty"`
	PaymentStatus    string    `json:"payment_status"` // success, set at creation
	PaymentReference string    `json:"payment_reference"`
	RegistrationFee  int64     `json:"registration_fee"` // naira
	MonthlyFee       int64     `json:"monthly_fee"`      // naira, derived from TechTrack
	DurationMonths   int       `json:"duration_months"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type StudentRepositoryInterface interface {
	Create(ctx context.Context, s *Student) error
	// Delete exists only as a saga compensation for a half-finished
	// completion; admin tooling never removes paid students this way.
	Delete(ctx context.Context, id string) error
	FindByEmail(ctx context.Context, email string) (*Student, error)
	FindByPaymentReference(ctx context.Context, reference string) (*Student, error)
	FindAll(ctx context.Context) ([]*Student, error)
	UpdatePaymentStatus(ctx context.Context, email, reference, status string) error
}

// NewStudentFromProspect promotes a prospect after a verified payment.
// Fees are derived here so a student row can never carry a fee that
// disagrees with its track.
func NewStudentFromProspect(p *Prospect, reference string) *Student {
	now := time.Now()
	return &Student{
		ID:               uuid.New().String(),
		Email:            p.Email,
		FullName:         p.FullName,
		Phone:            p.Phone,
		Program:          p.Program,
		TechTrack:        p.TechTrack,
		TechSkill:        p.TechSkill,
		AcademicLevel:    p.AcademicLevel,
		Interests:        p.Interests,
		PaymentStatus:    PaymentStatusSuccess,
		PaymentReference: reference,
		RegistrationFee:  RegistrationFeeNaira,
		MonthlyFee:       MonthlyFee(p.TechTrack),
		DurationMonths:   DurationMonths(p.TechTrack),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
