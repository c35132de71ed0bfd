package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/mjacademy/registration-service/internal/entity"
	"github.com/mjacademy/registration-service/internal/infra/integration/paystack"
	"github.com/mjacademy/registration-service/internal/infra/queue"
)

// CompleteRegistrationUseCase is finalizePaid(): verify the reference with
// the gateway, promote the prospect to a student, flip the completion flag,
// close out the payment attempt, queue the welcome email.
//
// Idempotent by payment reference: the reconcile path replays it safely.
type CompleteRegistrationUseCase struct {
	ProspectRepo entity.ProspectRepositoryInterface
	StudentRepo  entity.StudentRepositoryInterface
	PaymentRepo  entity.PaymentRepositoryInterface
	Gateway      PaymentGateway
	Producer     QueueProducerInterface
}

func NewCompleteRegistrationUseCase(
	prospectRepo entity.ProspectRepositoryInterface,
	studentRepo entity.StudentRepositoryInterface,
	paymentRepo entity.PaymentRepositoryInterface,
	gateway PaymentGateway,
	producer QueueProducerInterface,
) *CompleteRegistrationUseCase {
	return &CompleteRegistrationUseCase{
		ProspectRepo: prospectRepo,
		StudentRepo:  studentRepo,
		PaymentRepo:  paymentRepo,
		Gateway:      gateway,
		Producer:     producer,
	}
}

func (uc *CompleteRegistrationUseCase) Execute(ctx context.Context, input CompleteRegistrationInput) (*CompleteRegistrationOutput, error) {
	reference := strings.TrimSpace(input.Reference)
	if !paystack.ValidateReference(reference) {
		return nil, &DomainError{Code: "INVALID_REFERENCE", Message: "payment reference is malformed"}
	}

	// Replay guard first: a webhook and a verify call can race, and the
	// reconcile worker retries the whole flow.
	existing, err := uc.StudentRepo.FindByPaymentReference(ctx, reference)
	if err == nil {
		return &CompleteRegistrationOutput{
			Status:           entity.PaymentStatusSuccess,
			Reference:        reference,
			AlreadyProcessed: true,
			Student:          existing,
		}, nil
	}
	if !errors.Is(err, entity.ErrStudentNotFound) {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	outcome, err := uc.Gateway.VerifyTransaction(reference)
	if err != nil {
		return nil, &GatewayError{
			Code:      "VERIFICATION_FAILED",
			Message:   "could not verify the payment: " + err.Error(),
			Reference: reference,
			Retryable: true,
		}
	}

	switch outcome.Status {
	case paystack.OutcomeAbandoned:
		// Widget closed without paying. No error banner, nothing finalized;
		// the pending attempt is closed out quietly.
		uc.resolveAttempt(ctx, reference, entity.PaymentStatusCancelled, "checkout abandoned")
		return &CompleteRegistrationOutput{Status: entity.PaymentStatusCancelled, Reference: reference}, nil

	case paystack.OutcomeFailed:
		uc.resolveAttempt(ctx, reference, entity.PaymentStatusFailed, outcome.GatewayResponse)
		return nil, &GatewayError{
			Code:      "PAYMENT_FAILED",
			Message:   "payment was not successful: " + outcome.GatewayResponse,
			Reference: reference,
			Retryable: true,
		}
	}

	// Verified success from here on. Money has been captured, so every
	// failure below must leave a trail that the reconcile queue can replay.
	email := outcome.Email
	if attempt, attemptErr := uc.PaymentRepo.FindByReference(ctx, reference); attemptErr == nil {
		email = attempt.Email
	}

	prospect, err := uc.ProspectRepo.FindByEmail(ctx, email)
	if err != nil {
		uc.publishReconcile(ctx, reference, email)
		return nil, &TechnicalError{
			Code:    "COMPLETION_FAILED",
			Message: "payment verified but registration could not be finalized, reference " + reference,
		}
	}

	student := entity.NewStudentFromProspect(prospect, reference)

	txn := NewTransaction()

	txn.AddOperation("create_student", func(ctx context.Context) error {
		return uc.StudentRepo.Create(ctx, student)
	})
	txn.AddCompensation("delete_student", func(ctx context.Context) error {
		return uc.StudentRepo.Delete(ctx, student.ID)
	})

	txn.AddOperation("mark_prospect_completed", func(ctx context.Context) error {
		return uc.ProspectRepo.MarkCompleted(ctx, prospect.Email)
	})

	if err := txn.Execute(ctx); err != nil {
		uc.publishReconcile(ctx, reference, email)
		return nil, &TechnicalError{
			Code:    "COMPLETION_FAILED",
			Message: "payment verified but registration could not be finalized, reference " + reference,
		}
	}

	uc.resolveAttempt(ctx, reference, entity.PaymentStatusSuccess, "")

	// Welcome mail is fire-and-forget through the queue; a broker hiccup
	// never fails a registration that already happened.
	if err := uc.Producer.PublishCompletion(ctx, queue.CompletionPayload{
		Kind:           queue.KindWelcome,
		Reference:      reference,
		Email:          student.Email,
		Name:           student.FullName,
		Program:        student.Program,
		TechTrack:      student.TechTrack,
		MonthlyFee:     student.MonthlyFee,
		DurationMonths: student.DurationMonths,
	}); err != nil {
		log.Printf("⚠️ registered %s but welcome publish failed: %v", student.Email, err)
	}

	return &CompleteRegistrationOutput{
		Status:    entity.PaymentStatusSuccess,
		Reference: reference,
		Student:   student,
	}, nil
}

// Retry lets the queue worker replay a completion by reference alone.
func (uc *CompleteRegistrationUseCase) Retry(ctx context.Context, reference string) error {
	_, err := uc.Execute(ctx, CompleteRegistrationInput{Reference: reference})
	return err
}

func (uc *CompleteRegistrationUseCase) resolveAttempt(ctx context.Context, reference, status, note string) {
	if err := uc.PaymentRepo.Resolve(ctx, reference, status, note); err != nil {
		log.Printf("⚠️ failed to resolve payment attempt %s as %s: %v", reference, status, err)
	}
}

func (uc *CompleteRegistrationUseCase) publishReconcile(ctx context.Context, reference, email string) {
	err := uc.Producer.PublishCompletion(ctx, queue.CompletionPayload{
		Kind:      queue.KindReconcile,
		Reference: reference,
		Email:     email,
	})
	if err != nil {
		// Worst case: money captured, no student row, no queued retry.
		// Loud log so ops can finish it by hand from the reference.
		log.Printf("❌ CRITICAL: verified payment %s has no registration and reconcile publish failed: %v", reference, err)
	}
}
