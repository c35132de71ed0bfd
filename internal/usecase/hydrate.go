package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/mjacademy/registration-service/internal/entity"
)

// HydrateUseCase reloads a partially completed registration by email so a
// returning visitor resumes at the saved step. Debouncing the lookup is the
// caller's concern; the read itself has no side effects.
type HydrateUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
}

func NewHydrateUseCase(prospectRepo entity.ProspectRepositoryInterface) *HydrateUseCase {
	return &HydrateUseCase{ProspectRepo: prospectRepo}
}

func (uc *HydrateUseCase) Execute(ctx context.Context, email string) (*entity.Prospect, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "email is required"}
	}

	prospect, err := uc.ProspectRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrProspectNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to load prospect: " + err.Error(),
		}
	}

	// Completed prospects never hydrate a new session; the flow is done.
	if prospect.Completed {
		return nil, entity.ErrProspectNotFound
	}

	return prospect, nil
}
