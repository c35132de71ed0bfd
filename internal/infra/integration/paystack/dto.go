package paystack

// InitializeInput is the clean DTO the usecase layer hands us. Amount is in
// kobo already; conversion happens before the gateway boundary.
type InitializeInput struct {
	Email      string
	AmountKobo int64
	Reference  string
	Metadata   map[string]string
}

// InitializeOutput is what the frontend needs to open the checkout.
type InitializeOutput struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// OutcomeStatus is the tagged result of a verification call. One value per
// terminal path; there is no "both callbacks fired" ambiguity.
type OutcomeStatus string

const (
	OutcomeSuccess   OutcomeStatus = "success"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeAbandoned OutcomeStatus = "abandoned"
)

// Outcome is returned by VerifyTransaction.
type Outcome struct {
	Status          OutcomeStatus
	Reference       string
	Email           string
	AmountKobo      int64
	GatewayResponse string
}

// --- wire payloads: what we send to Paystack ---

type initializeRequest struct {
	Email     string            `json:"email"`
	Amount    int64             `json:"amount"` // kobo
	Currency  string            `json:"currency"`
	Reference string            `json:"reference"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// --- wire payloads: what Paystack returns ---

type initializeResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status          string `json:"status"` // success, failed, abandoned
		Reference       string `json:"reference"`
		Amount          int64  `json:"amount"` // kobo
		GatewayResponse string `json:"gateway_response"`
		Currency        string `json:"currency"`
		Customer        struct {
			Email string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}
