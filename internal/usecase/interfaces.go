package usecase

import (
	"context"

	"github.com/mjacademy/registration-service/internal/entity"
	"github.com/mjacademy/registration-service/internal/infra/integration/paystack"
	"github.com/mjacademy/registration-service/internal/infra/queue"
)

type PaymentGateway interface {
	ValidateConfig() error
	ValidateEmail(email string) bool
	PublicKey() string
	InitializeTransaction(input paystack.InitializeInput) (*paystack.InitializeOutput, error)
	VerifyTransaction(reference string) (*paystack.Outcome, error)
}

type QueueProducerInterface interface {
	PublishCompletion(ctx context.Context, payload queue.CompletionPayload) error
}

type EmailService interface {
	SendWelcome(to, name, program string, monthlyFee int64, durationMonths int) error
}

// The wizard steps, in order. Linear, no skipping.
const (
	StepPersonalInfo = 1
	StepProgram      = 2
	StepInterests    = 3
	StepPayment      = 4
)

// SaveStepInput is one step submission: the step index plus the slice of
// form data that step owns. Unset fields are merged over by the repository,
// not blanked.
type SaveStepInput struct {
	Step             int      `json:"step"`
	Email            string   `json:"email"`
	FullName         string   `json:"full_name"`
	Phone            string   `json:"phone"`
	IsMuslim         bool     `json:"is_muslim"`
	FaithConfirmText string   `json:"faith_confirm_text"`
	Program          string   `json:"program"`
	TechTrack        bool     `json:"tech_track"`
	TechSkill        string   `json:"tech_skill"`
	AcademicLevel    string   `json:"academic_level"`
	Interests        []string `json:"interests"`
}

type SaveStepOutput struct {
	Email          string `json:"email"`
	NextStep       int    `json:"next_step"`
	Saved          bool   `json:"saved"` // false when auto-save failed; never blocks
	MonthlyFee     int64  `json:"monthly_fee,omitempty"`
	DurationMonths int    `json:"duration_months,omitempty"`
}

type InitializePaymentInput struct {
	Email string `json:"email"`
}

type InitializePaymentOutput struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	PublicKey        string `json:"public_key"`
	AmountKobo       int64  `json:"amount_kobo"`
	Currency         string `json:"currency"`
}

type CompleteRegistrationInput struct {
	Reference string `json:"reference"`
}

type CompleteRegistrationOutput struct {
	Status           string          `json:"status"` // success, failed, cancelled
	Reference        string          `json:"reference"`
	AlreadyProcessed bool            `json:"already_processed,omitempty"`
	Student          *entity.Student `json:"student,omitempty"`
}
