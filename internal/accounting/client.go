package accounting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cre-commission-api/internal/config"
	"cre-commission-api/internal/utils"
)

// DisbursementReq is what the external bookkeeping system needs to create a
// payment record on its side.
type DisbursementReq struct {
	PaymentID uint64          `json:"payment_id"`
	DealID    uint64          `json:"deal_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Memo      string          `json:"memo,omitempty"`
}

// Client is the accounting-system collaborator. Disbursement treats it as a
// black box returning an opaque sync identifier.
type Client interface {
	CreateDisbursement(ctx context.Context, req DisbursementReq) (string, error)
}

type disbursementResp struct {
	SyncID string `json:"sync_id"`
}

// HTTPClient talks to the accounting system over its REST API.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	maxRetries int
	hc         *http.Client
}

func NewHTTPClient() *HTTPClient {
	c := config.C.Accounting
	return &HTTPClient{
		baseURL:    c.ApiUrl,
		apiKey:     c.ApiKey,
		maxRetries: c.MaxRetries,
		hc:         &http.Client{Timeout: time.Duration(c.TimeoutSec) * time.Second},
	}
}

func (c *HTTPClient) CreateDisbursement(ctx context.Context, req DisbursementReq) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal disbursement failed: %w", err)
	}

	var syncID string
	err = utils.DoWithRetry(ctx, c.maxRetries, time.Second, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
			c.baseURL+"/disbursements", bytes.NewReader(body))
		if err != nil {
			return err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-Api-Key", c.apiKey)

		resp, err := c.hc.Do(httpReq)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return fmt.Errorf("accounting returned %d: %s", resp.StatusCode, string(b))
		}

		var out disbursementResp
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode response failed: %w", err)
		}
		if out.SyncID == "" {
			return fmt.Errorf("accounting returned empty sync id")
		}
		syncID = out.SyncID
		return nil
	})
	if err != nil {
		return "", err
	}
	return syncID, nil
}
