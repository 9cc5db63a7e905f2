package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront-backend/internal/config"
)

// GuardRequest describes an incoming HTTP request for the abuse-protection
// gate.
type GuardRequest struct {
	IP     string `json:"ip"`
	Path   string `json:"path"`
	Method string `json:"method"`
	UserID string `json:"userId,omitempty"`
}

// GuardDecision is the gate's verdict. Reason is a machine code
// (e.g. RATE_LIMIT, BOT) translated to a user-facing message at the boundary.
type GuardDecision struct {
	Allow  bool   `json:"allow"`
	Reason string `json:"reason"`
}

// GuardClient wraps the pre-request abuse-protection service. A disabled
// client (no check URL configured) allows everything.
type GuardClient interface {
	Check(ctx context.Context, req GuardRequest) (*GuardDecision, error)
}

type guardClientImpl struct {
	httpClient *http.Client
	checkURL   string
	apiKey     string
}

func NewGuardClient(cfg *config.Guard) GuardClient {
	if cfg.CheckURL == "" {
		return allowAllGuard{}
	}
	return &guardClientImpl{
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		checkURL: cfg.CheckURL,
		apiKey:   cfg.APIKey,
	}
}

func (c *guardClientImpl) Check(ctx context.Context, greq GuardRequest) (*GuardDecision, error) {
	body, err := json.Marshal(greq)
	if err != nil {
		return nil, fmt.Errorf("marshal guard request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.checkURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("guard check request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("guard service error %d", resp.StatusCode)
	}

	var decision GuardDecision
	if err := json.NewDecoder(resp.Body).Decode(&decision); err != nil {
		return nil, fmt.Errorf("decode guard response: %w", err)
	}

	return &decision, nil
}

type allowAllGuard struct{}

func (allowAllGuard) Check(context.Context, GuardRequest) (*GuardDecision, error) {
	return &GuardDecision{Allow: true}, nil
}
