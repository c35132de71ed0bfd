package paystack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"time"
)

const (
	GatewayName = "paystack"
	Currency    = "NGN"
)

var ErrMissingConfig = errors.New("paystack keys are not configured")

type Client struct {
	baseURL   string
	secretKey string
	publicKey string
	http      *http.Client
}

func NewClient(secretKey, publicKey, baseURL string) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		publicKey: publicKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// ValidateConfig fails fast when keys are missing. No amount of retrying
// fixes an absent API key, so callers treat this as non-retryable.
func (c *Client) ValidateConfig() error {
	if c.secretKey == "" || c.publicKey == "" {
		return ErrMissingConfig
	}
	return nil
}

// PublicKey is handed to the frontend for the inline widget.
func (c *Client) PublicKey() string {
	return c.publicKey
}

func (c *Client) ValidateEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// InitializeTransaction creates the checkout session on Paystack and returns
// what the inline widget needs. Amount is already in kobo.
func (c *Client) InitializeTransaction(input InitializeInput) (*InitializeOutput, error) {
	url := fmt.Sprintf("%s/transaction/initialize", c.baseURL)

	payload := initializeRequest{
		Email:     input.Email,
		Amount:    input.AmountKobo,
		Currency:  Currency,
		Reference: input.Reference,
		Metadata:  SanitizeMetadata(input.Metadata),
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal initialize payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paystack rejected initialize (status %d): %s", resp.StatusCode, string(body))
	}

	var response initializeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode paystack response: %w", err)
	}
	if !response.Status {
		return nil, fmt.Errorf("paystack initialize returned status=false: %s", response.Message)
	}

	return &InitializeOutput{
		AuthorizationURL: response.Data.AuthorizationURL,
		AccessCode:       response.Data.AccessCode,
		Reference:        response.Data.Reference,
	}, nil
}

// VerifyTransaction asks Paystack what really happened to a reference and
// folds the answer into a single tagged Outcome. Anything that is not an
// explicit success is not a success.
func (c *Client) VerifyTransaction(reference string) (*Outcome, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", c.baseURL, reference)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("paystack rejected verify (status %d): %s", resp.StatusCode, string(body))
	}

	var response verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode paystack verify response: %w", err)
	}

	outcome := &Outcome{
		Reference:       response.Data.Reference,
		Email:           response.Data.Customer.Email,
		AmountKobo:      response.Data.Amount,
		GatewayResponse: response.Data.GatewayResponse,
	}

	switch response.Data.Status {
	case "success":
		outcome.Status = OutcomeSuccess
	case "abandoned":
		outcome.Status = OutcomeAbandoned
	default:
		outcome.Status = OutcomeFailed
	}

	return outcome, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MJAcademyRegistration/1.0")
}
