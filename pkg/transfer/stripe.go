package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripeGateway creates transfers to connected accounts via the Stripe API.
type StripeGateway struct {
	BaseURL   string
	SecretKey string
	client    *http.Client
}

func NewStripeGateway(baseURL, secretKey string) *StripeGateway {
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeGateway{
		BaseURL:   baseURL,
		SecretKey: secretKey,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type stripeTransferResp struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	Amount int64  `json:"amount"`
	Error  *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateTransfer calls POST /v1/transfers. Transport failures and 5xx come
// back as plain errors (outcome unknown - the caller must not assume the
// transfer failed). Definitive 4xx refusals become *RejectionError, except
// destinations that cannot receive transfers at all, which map to
// ErrTransfersDisabled.
func (g *StripeGateway) CreateTransfer(ctx context.Context, treq TransferRequest) (*TransferResponse, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(treq.AmountMinor, 10))
	form.Set("currency", strings.ToLower(treq.Currency))
	form.Set("destination", treq.Destination)
	if treq.Description != "" {
		form.Set("description", treq.Description)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/transfers", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("stripe transfer failed: %d %s", resp.StatusCode, string(body))
	}

	var out stripeTransferResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("stripe transfer: invalid response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			if isTransfersDisabled(out.Error.Code) {
				return nil, ErrTransfersDisabled
			}
			return nil, &RejectionError{Code: out.Error.Code, Message: out.Error.Message}
		}
		return nil, fmt.Errorf("stripe transfer failed: %d %s", resp.StatusCode, string(body))
	}
	return &TransferResponse{Reference: out.ID, Status: "created"}, nil
}

func isTransfersDisabled(code string) bool {
	switch code {
	case "transfers_not_allowed", "account_capabilities_insufficient", "account_invalid":
		return true
	}
	return false
}
