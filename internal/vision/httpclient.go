package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the local detection service, which owns the physical
// camera and the landmark model. One process serves both capabilities:
//
//	POST /capture/start        acquire the camera
//	POST /capture/stop         release the camera
//	GET  /capture/frame        latest JPEG frame
//	POST /detect               JPEG body -> {"faces": [...]}
//
// Client implements both Capture and Detector.
type Client struct {
	baseURL string
	http    *http.Client
}

var (
	_ Capture  = (*Client)(nil)
	_ Detector = (*Client)(nil)
)

// NewClient creates a detection service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Start asks the service to acquire the camera.
func (c *Client) Start(ctx context.Context) error {
	return c.post(ctx, "/capture/start")
}

// Stop asks the service to release the camera.
func (c *Client) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.post(ctx, "/capture/stop")
}

// Grab fetches the most recent frame.
func (c *Client) Grab(ctx context.Context) (Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/capture/frame", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch frame: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch frame: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return Frame(data), nil
}

// Detect submits a frame for landmark detection.
func (c *Client) Detect(ctx context.Context, frame Frame) ([]Face, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect", bytes.NewReader(frame))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("detect: status %d", resp.StatusCode)
	}

	var out struct {
		Faces []Face `json:"faces"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode detect response: %w", err)
	}
	return out.Faces, nil
}

func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", path, resp.StatusCode)
	}
	return nil
}
