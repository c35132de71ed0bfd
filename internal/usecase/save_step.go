package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mjacademy/registration-service/internal/entity"
)

// SaveStepUseCase is the advance() half of the wizard: validate the step's
// own slice of data, snapshot the prospect, move the step pointer forward.
// The snapshot is best-effort; a failed auto-save is logged and never blocks
// navigation.
type SaveStepUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
}

func NewSaveStepUseCase(prospectRepo entity.ProspectRepositoryInterface) *SaveStepUseCase {
	return &SaveStepUseCase{ProspectRepo: prospectRepo}
}

func (uc *SaveStepUseCase) Execute(ctx context.Context, input SaveStepInput) (*SaveStepOutput, error) {
	validationErrors := ValidateStep(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: strings.TrimSuffix(errMsg, ", "),
		}
	}

	if strings.TrimSpace(input.Email) == "" {
		// Steps past the first can only be saved once an email is known.
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed: email (is required)",
		}
	}

	nextStep := input.Step
	if nextStep < StepPayment {
		nextStep++
	}

	now := time.Now()
	prospect := &entity.Prospect{
		ID:               uuid.New().String(),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		FullName:         input.FullName,
		Phone:            input.Phone,
		IsMuslim:         input.IsMuslim,
		FaithConfirmText: input.FaithConfirmText,
		Program:          input.Program,
		TechTrack:        input.TechTrack,
		TechSkill:        input.TechSkill,
		AcademicLevel:    input.AcademicLevel,
		Interests:        FilterInterests(input.Interests),
		CurrentStep:      nextStep,
		Completed:        false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	saved := true
	if err := uc.ProspectRepo.Upsert(ctx, prospect); err != nil {
		// Auto-save must not stop the user from moving on.
		log.Printf("⚠️ prospect auto-save failed for %s (step %d): %v", prospect.Email, input.Step, err)
		saved = false
	}

	out := &SaveStepOutput{
		Email:    prospect.Email,
		NextStep: nextStep,
		Saved:    saved,
	}

	// The program step gets a fee preview so the UI can show pricing
	// before the payment step.
	if input.Step == StepProgram {
		out.MonthlyFee = entity.MonthlyFee(input.TechTrack)
		out.DurationMonths = entity.DurationMonths(input.TechTrack)
	}

	return out, nil
}
