// internal/protocol/client.go
package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inklight/bookip-backend/internal/config"
	"github.com/inklight/bookip-backend/internal/models"
)

// Client talks JSON over HTTP to the protocol node. It implements all
// four collaborator interfaces; the services receive it through the
// narrow interface each one needs.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

var _ Registrar = (*Client)(nil)
var _ DerivativeRegistrar = (*Client)(nil)
var _ RoyaltyClient = (*Client)(nil)
var _ Currency = (*Client)(nil)

func NewClient(cfg config.ProtocolConfig) *Client {
	return &Client{
		baseURL: cfg.NodeURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
	}
}

// RemoteError is an opaque failure raised by the protocol node,
// propagated to the caller without translation.
type RemoteError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("protocol error %s: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *RemoteError    `json:"error,omitempty"`
}

func (c *Client) CreateCollection(ctx context.Context, name, symbol string) (string, error) {
	req := map[string]string{"name": name, "symbol": symbol}
	var resp struct {
		Handle string `json:"handle"`
	}
	if err := c.post(ctx, "/v1/collections", req, &resp); err != nil {
		return "", fmt.Errorf("create collection: %w", err)
	}
	return resp.Handle, nil
}

func (c *Client) RegisterRoot(ctx context.Context, req RootRegistration) (*RootResult, error) {
	var resp RootResult
	if err := c.post(ctx, "/v1/ip/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register root asset: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"asset_id": resp.AssetID,
		"token_id": resp.TokenID,
	}).Info("Root asset registered on protocol")
	return &resp, nil
}

func (c *Client) RegisterDerivative(ctx context.Context, req DerivativeRegistration) (*DerivativeResult, error) {
	var resp DerivativeResult
	if err := c.post(ctx, "/v1/ip/derivative", req, &resp); err != nil {
		return nil, fmt.Errorf("register derivative asset: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"asset_id": resp.AssetID,
		"parents":  len(req.ParentAssetIDs),
	}).Info("Derivative asset registered on protocol")
	return &resp, nil
}

func (c *Client) VaultOf(ctx context.Context, assetID string) (models.Principal, error) {
	var resp struct {
		Vault models.Principal `json:"vault"`
	}
	path := "/v1/royalty/vault/" + url.PathEscape(assetID)
	if err := c.get(ctx, path, &resp); err != nil {
		return models.ZeroPrincipal, fmt.Errorf("vault lookup: %w", err)
	}
	return resp.Vault, nil
}

func (c *Client) PayOnBehalf(ctx context.Context, parentAssetID, payerAssetID string, currency models.Principal, amount models.Amount) error {
	req := map[string]interface{}{
		"parent_asset_id": parentAssetID,
		"payer_asset_id":  payerAssetID,
		"currency":        currency,
		"amount":          amount,
	}
	if err := c.post(ctx, "/v1/royalty/pay", req, nil); err != nil {
		return fmt.Errorf("pay on behalf: %w", err)
	}
	return nil
}

func (c *Client) ClaimAllRevenue(ctx context.Context, assetID string, claimant models.Principal, sources []models.Principal) ([]models.Amount, error) {
	req := map[string]interface{}{
		"asset_id": assetID,
		"claimant": claimant,
		"sources":  sources,
	}
	var resp struct {
		Amounts []models.Amount `json:"amounts"`
	}
	if err := c.post(ctx, "/v1/royalty/claim", req, &resp); err != nil {
		return nil, fmt.Errorf("claim revenue: %w", err)
	}
	return resp.Amounts, nil
}

func (c *Client) TransferFrom(ctx context.Context, payer, recipient models.Principal, amount models.Amount) error {
	req := map[string]interface{}{
		"payer":     payer,
		"recipient": recipient,
		"amount":    amount,
	}
	if err := c.post(ctx, "/v1/currency/transfer", req, nil); err != nil {
		return fmt.Errorf("currency transfer: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("protocol node unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read protocol response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("malformed protocol response (status %d): %w", resp.StatusCode, err)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		if env.Error != nil {
			env.Error.Status = resp.StatusCode
			return env.Error
		}
		return &RemoteError{Status: resp.StatusCode, Code: "UNKNOWN", Message: string(raw)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode protocol response: %w", err)
		}
	}
	return nil
}
