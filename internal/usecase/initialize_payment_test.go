package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mjacademy/registration-service/internal/entity"
	"github.com/mjacademy/registration-service/internal/infra/integration/paystack"
)

func TestInitializePaymentConfigurationError(t *testing.T) {
	gateway := new(MockPaymentGateway)
	gateway.On("ValidateConfig").Return(paystack.ErrMissingConfig)

	uc := NewInitializePaymentUseCase(new(MockProspectRepository), new(MockPaymentRepository), gateway)

	out, err := uc.Execute(context.Background(), InitializePaymentInput{Email: "amina@example.com"})

	assert.Nil(t, out)
	assert.True(t, IsGatewayError(err))
	gwErr := err.(*GatewayError)
	assert.Equal(t, "CONFIGURATION_ERROR", gwErr.Code)
	// Retrying cannot conjure an API key.
	assert.False(t, gwErr.Retryable)
}

func TestInitializePaymentRequiresProspect(t *testing.T) {
	gateway := new(MockPaymentGateway)
	gateway.On("ValidateConfig").Return(nil)

	prospectRepo := new(MockProspectRepository)
	prospectRepo.On("FindByEmail", mock.Anything, "amina@example.com").Return(nil, entity.ErrProspectNotFound)

	uc := NewInitializePaymentUseCase(prospectRepo, new(MockPaymentRepository), gateway)

	_, err := uc.Execute(context.Background(), InitializePaymentInput{Email: "amina@example.com"})

	assert.True(t, IsDomainError(err))
	assert.Equal(t, "PROSPECT_NOT_FOUND", err.(*DomainError).Code)
}

func TestInitializePaymentRecordsPendingAttempt(t *testing.T) {
	gateway := new(MockPaymentGateway)
	gateway.On("ValidateConfig").Return(nil)
	gateway.On("InitializeTransaction", mock.Anything).Return(&paystack.InitializeOutput{
		AuthorizationURL: "https://checkout.paystack.com/abc",
		AccessCode:       "abc",
		Reference:        "ignored",
	}, nil)

	prospectRepo := new(MockProspectRepository)
	prospectRepo.On("FindByEmail", mock.Anything, "amina@example.com").Return(testProspect(), nil)

	var recorded *entity.PaymentAttempt
	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("Record", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		recorded = args.Get(1).(*entity.PaymentAttempt)
	}).Return(nil)

	uc := NewInitializePaymentUseCase(prospectRepo, paymentRepo, gateway)

	out, err := uc.Execute(context.Background(), InitializePaymentInput{Email: " Amina@Example.com "})

	assert.NoError(t, err)
	assert.True(t, paystack.ValidateReference(out.Reference))
	// ₦5,000 registration fee in kobo.
	assert.Equal(t, int64(500000), out.AmountKobo)
	assert.Equal(t, "NGN", out.Currency)
	assert.Equal(t, "pk_test_mock", out.PublicKey)

	assert.NotNil(t, recorded)
	assert.Equal(t, entity.PaymentStatusPending, recorded.Status)
	assert.Equal(t, "amina@example.com", recorded.Email)
	assert.Equal(t, out.Reference, recorded.Reference)
	assert.Equal(t, paystack.GatewayName, recorded.Gateway)
	// Metadata carries only allow-listed prospect fields.
	assert.Equal(t, "Amina Bello", recorded.Metadata["full_name"])
	assert.Equal(t, "true", recorded.Metadata["tech_track"])
}

func TestInitializePaymentGatewayErrorCarriesReference(t *testing.T) {
	gateway := new(MockPaymentGateway)
	gateway.On("ValidateConfig").Return(nil)
	gateway.On("InitializeTransaction", mock.Anything).Return(nil, assert.AnError)

	prospectRepo := new(MockProspectRepository)
	prospectRepo.On("FindByEmail", mock.Anything, "amina@example.com").Return(testProspect(), nil)

	paymentRepo := new(MockPaymentRepository)
	paymentRepo.On("Record", mock.Anything, mock.Anything).Return(nil)

	uc := NewInitializePaymentUseCase(prospectRepo, paymentRepo, gateway)

	_, err := uc.Execute(context.Background(), InitializePaymentInput{Email: "amina@example.com"})

	assert.True(t, IsGatewayError(err))
	gwErr := err.(*GatewayError)
	assert.True(t, gwErr.Retryable)
	assert.True(t, paystack.ValidateReference(gwErr.Reference))
}
