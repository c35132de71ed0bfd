package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mjacademy/registration-service/internal/entity"
	"github.com/mjacademy/registration-service/internal/infra/integration/paystack"
)

// InitializePaymentUseCase starts one gateway interaction: config check,
// reference generation, metadata allow-listing, pending attempt record,
// checkout session on the gateway.
type InitializePaymentUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	PaymentRepo  entity.PaymentRepositoryInterface
	Gateway      PaymentGateway
}

func NewInitializePaymentUseCase(
	prospectRepo entity.ProspectRepositoryInterface,
	paymentRepo entity.PaymentRepositoryInterface,
	gateway PaymentGateway,
) *InitializePaymentUseCase {
	return &InitializePaymentUseCase{
		ProspectRepo: prospectRepo,
		PaymentRepo:  paymentRepo,
		Gateway:      gateway,
	}
}

func (uc *InitializePaymentUseCase) Execute(ctx context.Context, input InitializePaymentInput) (*InitializePaymentOutput, error) {
	// Missing keys are an operator problem, not a user problem. Fail before
	// touching anything else and mark it non-retryable.
	if err := uc.Gateway.ValidateConfig(); err != nil {
		return nil, &GatewayError{
			Code:      "CONFIGURATION_ERROR",
			Message:   "payment is not available right now, please contact support",
			Retryable: false,
		}
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !uc.Gateway.ValidateEmail(email) {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "a valid email is required"}
	}

	prospect, err := uc.ProspectRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrProspectNotFound) {
			return nil, &DomainError{
				Code:    "PROSPECT_NOT_FOUND",
				Message: "no registration in progress for this email",
			}
		}
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	amountNaira := float64(entity.RegistrationFeeNaira)
	if !paystack.ValidateAmount(amountNaira) {
		return nil, &DomainError{Code: "INVALID_AMOUNT", Message: fmt.Sprintf("invalid registration fee: %v", amountNaira)}
	}
	amountKobo := paystack.ToKobo(amountNaira)

	reference := paystack.GenerateReference()

	attempt := &entity.PaymentAttempt{
		ID:         uuid.New().String(),
		Reference:  reference,
		Email:      email,
		AmountKobo: amountKobo,
		Status:     entity.PaymentStatusPending,
		Gateway:    paystack.GatewayName,
		Metadata:   buildGatewayMetadata(prospect),
		CreatedAt:  time.Now(),
	}

	if err := uc.PaymentRepo.Record(ctx, attempt); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to record payment attempt: " + err.Error(),
		}
	}

	session, err := uc.Gateway.InitializeTransaction(paystack.InitializeInput{
		Email:      email,
		AmountKobo: amountKobo,
		Reference:  reference,
		Metadata:   attempt.Metadata,
	})
	if err != nil {
		return nil, &GatewayError{
			Code:      "GATEWAY_ERROR",
			Message:   "could not start the payment: " + err.Error(),
			Reference: reference,
			Retryable: true,
		}
	}

	return &InitializePaymentOutput{
		Reference:        reference,
		AuthorizationURL: session.AuthorizationURL,
		AccessCode:       session.AccessCode,
		PublicKey:        uc.Gateway.PublicKey(),
		AmountKobo:       amountKobo,
		Currency:         paystack.Currency,
	}, nil
}

func buildGatewayMetadata(p *entity.Prospect) map[string]string {
	return map[string]string{
		"full_name":      p.FullName,
		"program":        p.Program,
		"tech_track":     strconv.FormatBool(p.TechTrack),
		"tech_skill":     p.TechSkill,
		"academic_level": p.AcademicLevel,
		"interests":      strings.Join(p.Interests, ", "),
		"phone":          p.Phone,
	}
}
