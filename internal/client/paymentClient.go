package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"storefront-backend/internal/config"
)

// GatewayOrderItem is one purchase line forwarded to the payment gateway.
type GatewayOrderItem struct {
	Sku      string
	Name     string
	Price    decimal.Decimal
	Quantity int
}

type CreateGatewayOrderResponse struct {
	OrderID    string
	Status     string
	ApproveURL string
}

// CaptureResult is the gateway's capture outcome. PaymentID identifies the
// captured payment and is stored on the final order.
type CaptureResult struct {
	PaymentID string
	Status    string
	PayerID   string
}

// PaymentClient wraps the external payment gateway: it trades client
// credentials for an access token, creates orders for buyer approval, and
// captures approved orders.
type PaymentClient interface {
	CreateOrder(ctx context.Context, items []GatewayOrderItem, total decimal.Decimal) (*CreateGatewayOrderResponse, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type paymentClientImpl struct {
	httpClient   *http.Client
	baseApiURL   string
	clientID     string
	clientSecret string
}

func NewPaymentClient(cfg *config.Payment) PaymentClient {
	return &paymentClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:   cfg.BaseApiURL,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

type gatewayLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type gatewayOrderResult struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Links  []gatewayLink `json:"links"`
}

func (c *paymentClientImpl) getAccessToken(ctx context.Context) (string, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.clientID + ":" + c.clientSecret),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v1/oauth2/token",
		bytes.NewBufferString("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gateway token error %d: %s", resp.StatusCode, string(b))
	}

	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	return res.AccessToken, nil
}

func (c *paymentClientImpl) CreateOrder(ctx context.Context, items []GatewayOrderItem, total decimal.Decimal) (*CreateGatewayOrderResponse, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get gateway access token: %w", err)
	}

	gatewayItems := make([]map[string]interface{}, len(items))
	itemTotal := decimal.Zero
	for i, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		itemTotal = itemTotal.Add(item.Price.Mul(qty))

		gatewayItems[i] = map[string]interface{}{
			"name": item.Name,
			"sku":  item.Sku,
			"unit_amount": map[string]string{
				"currency_code": "USD",
				"value":         item.Price.StringFixed(2),
			},
			"quantity": fmt.Sprintf("%d", item.Quantity),
			"category": "PHYSICAL_GOODS",
		}
	}

	payload := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]interface{}{
					"currency_code": "USD",
					"value":         total.StringFixed(2),
					"breakdown": map[string]interface{}{
						"item_total": map[string]string{
							"currency_code": "USD",
							"value":         itemTotal.StringFixed(2),
						},
					},
				},
				"items": gatewayItems,
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/checkout/orders",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gateway error %d: %s", resp.StatusCode, string(b))
	}

	var result gatewayOrderResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}

	return &CreateGatewayOrderResponse{
		OrderID:    result.ID,
		Status:     result.Status,
		ApproveURL: extractApproveURL(result.Links),
	}, nil
}

func (c *paymentClientImpl) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	accessToken, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get gateway access token: %w", err)
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseApiURL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create capture request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway capture request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway capture failed: status=%d body=%s",
			resp.StatusCode, string(body))
	}

	var result struct {
		Status        string `json:"status"`
		Payer         struct {
			PayerID string `json:"payer_id"`
		} `json:"payer"`
		PurchaseUnits []struct {
			Payments struct {
				Captures []struct {
					ID string `json:"id"`
				} `json:"captures"`
			} `json:"payments"`
		} `json:"purchase_units"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode capture response: %w", err)
	}

	capture := &CaptureResult{
		Status:  result.Status,
		PayerID: result.Payer.PayerID,
	}
	if len(result.PurchaseUnits) > 0 && len(result.PurchaseUnits[0].Payments.Captures) > 0 {
		capture.PaymentID = result.PurchaseUnits[0].Payments.Captures[0].ID
	}

	return capture, nil
}

func extractApproveURL(links []gatewayLink) string {
	for _, link := range links {
		if link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
