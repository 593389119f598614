package quality

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient calls an external image service that exposes /assess and
// /recognize endpoints. It implements both Assessor and Recognizer.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a client for the image service at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// AssessQuality posts the image to the /assess endpoint.
func (c *HTTPClient) AssessQuality(ctx context.Context, image []byte) (Assessment, error) {
	var assessment Assessment
	if err := c.post(ctx, "/assess", image, &assessment); err != nil {
		return Assessment{}, err
	}
	return assessment, nil
}

// Recognize posts the image to the /recognize endpoint.
func (c *HTTPClient) Recognize(ctx context.Context, image []byte) (OCRResult, error) {
	var result OCRResult
	if err := c.post(ctx, "/recognize", image, &result); err != nil {
		return OCRResult{}, err
	}
	return result, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, image []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(image))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call image service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("image service %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode image service response: %w", err)
	}
	return nil
}
