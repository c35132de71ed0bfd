package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/mjacademy/registration-service/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// The reference phrase the faith confirmation must normalize to.
const faithReferencePhrase = "i am a muslim alhamdulillah"

var (
	nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// NormalizePhrase trims, collapses whitespace, lowercases and strips
// punctuation, so "i  AM a muslim,  Alhamdulillah!!" matches the reference.
func NormalizePhrase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonAlnumSpace.ReplaceAllString(s, "")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func IsFaithConfirmation(s string) bool {
	return NormalizePhrase(s) == faithReferencePhrase
}

// ValidateStep dispatches to the per-step contract. Each step validates its
// own slice of the form; the orchestrator itself never re-validates.
func ValidateStep(input SaveStepInput) []ValidationError {
	switch input.Step {
	case StepPersonalInfo:
		return validatePersonalInfo(input)
	case StepProgram:
		return validateProgramSelection(input)
	case StepInterests:
		return validateInterests(input)
	case StepPayment:
		return nil
	default:
		return []ValidationError{{"step", fmt.Sprintf("must be between %d and %d", StepPersonalInfo, StepPayment)}}
	}
}

func validatePersonalInfo(input SaveStepInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.FullName) == "" {
		errors = append(errors, ValidationError{"full_name", "is required"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"phone", "is required"})
	} else if !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if !input.IsMuslim {
		errors = append(errors, ValidationError{"is_muslim", "must be confirmed"})
	} else if !IsFaithConfirmation(input.FaithConfirmText) {
		errors = append(errors, ValidationError{"faith_confirm_text", "does not match the confirmation phrase"})
	}

	return errors
}

func validateProgramSelection(input SaveStepInput) []ValidationError {
	var errors []ValidationError

	if input.TechTrack {
		if strings.TrimSpace(input.TechSkill) == "" {
			errors = append(errors, ValidationError{"tech_skill", "select a tech skill"})
		} else if !entity.IsValidTechSkill(input.TechSkill) {
			errors = append(errors, ValidationError{"tech_skill", "is not in the skills catalog"})
		}
	}

	return errors
}

// No required fields; unknown subjects are dropped rather than rejected,
// so an empty or partly bogus selection still passes.
func validateInterests(input SaveStepInput) []ValidationError {
	return nil
}

// FilterInterests keeps only subjects from the fixed catalog.
func FilterInterests(interests []string) []string {
	var out []string
	for _, s := range interests {
		if entity.IsValidSubject(s) {
			out = append(out, s)
		}
	}
	return out
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 14
}
