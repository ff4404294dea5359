// Package payos is a minimal client for the PayOS payment gateway: creating
// hosted checkout links and verifying inbound webhook payloads.
package payos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// CodeSuccess is the gateway result code for a successful operation or
// payment ("00" in both the API envelope and webhook data).
const CodeSuccess = "00"

// MaxItemNameLen is the gateway's limit on line-item names.
const MaxItemNameLen = 25

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrNotConfigured    = errors.New("payos credentials not configured")
)

type Client struct {
	http        *http.Client
	baseURL     string
	clientID    string
	apiKey      string
	checksumKey string
}

func NewClient(baseURL, clientID, apiKey, checksumKey string) *Client {
	return &Client{
		http:        &http.Client{Timeout: 10 * time.Second},
		baseURL:     baseURL,
		clientID:    clientID,
		apiKey:      apiKey,
		checksumKey: checksumKey,
	}
}

func (c *Client) configured() bool {
	return c.clientID != "" && c.apiKey != "" && c.checksumKey != ""
}

type CheckoutItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type CheckoutRequest struct {
	OrderCode   int64          `json:"orderCode"`
	Amount      int64          `json:"amount"`
	Description string         `json:"description"`
	Items       []CheckoutItem `json:"items"`
	ReturnURL   string         `json:"returnUrl"`
	CancelURL   string         `json:"cancelUrl"`
	Signature   string         `json:"signature"`
}

type CheckoutData struct {
	PaymentLinkID string `json:"paymentLinkId"`
	CheckoutURL   string `json:"checkoutUrl"`
	OrderCode     int64  `json:"orderCode"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
}

type apiResponse struct {
	Code string          `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

// CreatePaymentRequest signs req and posts it to /v2/payment-requests.
// The request signature covers the five scalar checkout fields in
// alphabetical key order, per the gateway contract.
func (c *Client) CreatePaymentRequest(ctx context.Context, req CheckoutRequest) (*CheckoutData, error) {
	if !c.configured() {
		return nil, ErrNotConfigured
	}

	req.Signature = c.sign(fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL))

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/payment-requests", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-id", c.clientID)
	httpReq.Header.Set("x-api-key", c.apiKey)

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var envelope apiResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if res.StatusCode != http.StatusOK || envelope.Code != CodeSuccess {
		return nil, fmt.Errorf("gateway rejected payment request: code=%s desc=%s", envelope.Code, envelope.Desc)
	}

	var data CheckoutData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, fmt.Errorf("decode checkout data: %w", err)
	}
	return &data, nil
}
