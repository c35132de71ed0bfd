package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingByTrack(t *testing.T) {
	assert.Equal(t, int64(2000), MonthlyFee(true))
	assert.Equal(t, 12, DurationMonths(true))

	assert.Equal(t, int64(1500), MonthlyFee(false))
	assert.Equal(t, 9, DurationMonths(false))
}

func TestCatalogMembership(t *testing.T) {
	assert.True(t, IsValidTechSkill("Frontend Development"))
	assert.True(t, IsValidTechSkill("Cybersecurity"))
	assert.False(t, IsValidTechSkill("Basket Weaving"))
	assert.False(t, IsValidTechSkill(""))

	assert.True(t, IsValidSubject("Tajweed"))
	assert.True(t, IsValidSubject("Fiqh"))
	assert.False(t, IsValidSubject("Astrology"))
}

func TestNewStudentFromProspect(t *testing.T) {
	p := &Prospect{
		Email:         "amina@example.com",
		FullName:      "Amina Bello",
		Phone:         "+2348012345678",
		Program:       "Full Islamic Studies",
		TechTrack:     true,
		TechSkill:     "Frontend Development",
		AcademicLevel: "Undergraduate",
		Interests:     []string{"Tajweed"},
	}

	s := NewStudentFromProspect(p, "MJ_1712345678901_4F7K2Q9X")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "amina@example.com", s.Email)
	assert.Equal(t, "MJ_1712345678901_4F7K2Q9X", s.PaymentReference)
	assert.Equal(t, PaymentStatusSuccess, s.PaymentStatus)
	assert.Equal(t, RegistrationFeeNaira, s.RegistrationFee)
	// Fees follow the track, never the input.
	assert.Equal(t, int64(2000), s.MonthlyFee)
	assert.Equal(t, 12, s.DurationMonths)
	assert.False(t, s.CreatedAt.IsZero())
}

func TestNewStudentFromProspectBaseTrack(t *testing.T) {
	s := NewStudentFromProspect(&Prospect{Email: "x@example.com", TechTrack: false}, "MJ_1_AAAAAAAA")

	assert.Equal(t, int64(1500), s.MonthlyFee)
	assert.Equal(t, 9, s.DurationMonths)
	assert.Empty(t, s.TechSkill)
}

func TestTerminalPaymentStatus(t *testing.T) {
	assert.True(t, IsTerminalPaymentStatus(PaymentStatusSuccess))
	assert.True(t, IsTerminalPaymentStatus(PaymentStatusFailed))
	assert.True(t, IsTerminalPaymentStatus(PaymentStatusCancelled))
	assert.False(t, IsTerminalPaymentStatus(PaymentStatusPending))
}
