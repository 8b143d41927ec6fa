package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/salesapp/internal/domain"
)

var paymongoHTTPClient = &http.Client{Timeout: 15 * time.Second}

// PayMongoGateway talks to the PayMongo payment-intent API and maps its
// status vocabulary into the gateway-independent PaymentStatus set.
type PayMongoGateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewPayMongoGateway constructs a gateway against the given API base URL.
func NewPayMongoGateway(baseURL, secretKey string) *PayMongoGateway {
	return &PayMongoGateway{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    paymongoHTTPClient,
	}
}

type paymongoAttributes struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	Status      string            `json:"status,omitempty"`
	CheckoutURL string            `json:"checkout_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paymongoData struct {
	ID         string             `json:"id"`
	Attributes paymongoAttributes `json:"attributes"`
}

type paymongoEnvelope struct {
	Data paymongoData `json:"data"`
}

func (g *PayMongoGateway) CreatePayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	// PayMongo expects amounts in centavos.
	payload := paymongoEnvelope{
		Data: paymongoData{
			Attributes: paymongoAttributes{
				Amount:      req.Amount.Mul(decimal.NewFromInt(100)).IntPart(),
				Currency:    strings.ToLower(req.Currency),
				Description: req.Description,
				Metadata:    req.Metadata,
			},
		},
	}

	var resp paymongoEnvelope
	if err := g.do(ctx, http.MethodPost, "/payment_intents", payload, &resp); err != nil {
		return nil, err
	}
	return g.toPayment(&resp.Data), nil
}

func (g *PayMongoGateway) GetStatus(ctx context.Context, reference string) (*Payment, error) {
	var resp paymongoEnvelope
	if err := g.do(ctx, http.MethodGet, "/payment_intents/"+reference, nil, &resp); err != nil {
		return nil, err
	}
	return g.toPayment(&resp.Data), nil
}

func (g *PayMongoGateway) VerifyPayment(ctx context.Context, reference string) (bool, error) {
	p, err := g.GetStatus(ctx, reference)
	if err != nil {
		return false, err
	}
	return p.Status == PaymentPaid, nil
}

func (g *PayMongoGateway) CancelPayment(ctx context.Context, reference string) (*Payment, error) {
	current, err := g.GetStatus(ctx, reference)
	if err != nil {
		return nil, err
	}
	if current.Status == PaymentPaid {
		return nil, fmt.Errorf("cancel paid payment %s: %w", reference, domain.ErrInvalidState)
	}

	var resp paymongoEnvelope
	if err := g.do(ctx, http.MethodPost, "/payment_intents/"+reference+"/cancel", nil, &resp); err != nil {
		return nil, err
	}
	return g.toPayment(&resp.Data), nil
}

func (g *PayMongoGateway) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paymongo request marshal: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("paymongo request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(g.secretKey+":")))

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("paymongo request: %w", domain.ErrGatewayUnavailable)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("paymongo %s: %w", path, domain.ErrNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("paymongo status %d: %w", resp.StatusCode, domain.ErrGatewayUnavailable)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("paymongo status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("paymongo unmarshal: %w", err)
	}
	return nil
}

func (g *PayMongoGateway) toPayment(data *paymongoData) *Payment {
	return &Payment{
		Reference:   data.ID,
		Status:      mapPayMongoStatus(data.Attributes.Status),
		Amount:      decimal.NewFromInt(data.Attributes.Amount).Div(decimal.NewFromInt(100)),
		Currency:    strings.ToUpper(data.Attributes.Currency),
		Description: data.Attributes.Description,
		CheckoutURL: data.Attributes.CheckoutURL,
		CreatedAt:   time.Now(),
		Metadata:    data.Attributes.Metadata,
	}
}

func mapPayMongoStatus(status string) PaymentStatus {
	switch status {
	case "awaiting_payment_method":
		return PaymentPending
	case "awaiting_next_action":
		return PaymentAwaiting
	case "processing":
		return PaymentProcessing
	case "succeeded":
		return PaymentPaid
	case "failed":
		return PaymentFailed
	case "cancelled":
		return PaymentCancelled
	default:
		return PaymentPending
	}
}
