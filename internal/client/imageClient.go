package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"storefront-backend/internal/config"
)

// ImageClient wraps the external image store: it accepts a file and returns
// a durable URL serving it.
type ImageClient interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type imageClientImpl struct {
	httpClient *http.Client
	uploadURL  string
	apiKey     string
	folder     string
}

func NewImageClient(cfg *config.ImageCDN) ImageClient {
	return &imageClientImpl{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		uploadURL: cfg.UploadURL,
		apiKey:    cfg.APIKey,
		folder:    cfg.Folder,
	}
}

func (c *imageClientImpl) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("folder", c.folder); err != nil {
		return "", fmt.Errorf("write folder field: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file body: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("image store error %d: %s", resp.StatusCode, string(b))
	}

	var result struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("image store returned empty url")
	}

	return result.SecureURL, nil
}
