package entity

import "slices"

// Two-tier pricing, naira. The tech track extends both fee and duration.
const (
	RegistrationFeeNaira int64 = 5000

	baseMonthlyFeeNaira int64 = 1500
	techMonthlyFeeNaira int64 = 2000

	baseDurationMonths = 9
	techDurationMonths = 12
)

func MonthlyFee(techTrack bool) int64 {
	if techTrack {
		return techMonthlyFeeNaira
	}
	return baseMonthlyFeeNaira
}

func DurationMonths(techTrack bool) int {
	if techTrack {
		return techDurationMonths
	}
	return baseDurationMonths
}

// TechSkills is the fixed catalog a tech-track student picks from.
var TechSkills = []string{
	"Frontend Development",
	"Backend Development",
	"Mobile Development",
	"UI/UX Design",
	"Data Analysis",
	"Cybersecurity",
}

// Subjects is the fixed interests catalog. Selection is optional and may
// be empty.
var Subjects = []string{
	"Qur'an Memorization",
	"Tajweed",
	"Arabic Language",
	"Fiqh",
	"Hadith",
	"Aqeedah",
	"Seerah",
	"Islamic History",
}

func IsValidTechSkill(skill string) bool {
	return slices.Contains(TechSkills, skill)
}

func IsValidSubject(subject string) bool {
	return slices.Contains(Subjects, subject)
}
