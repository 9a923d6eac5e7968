package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultHFImageModel   = "stabilityai/stable-diffusion-3.5-large"
	DefaultHFImageBaseURL = "https://router.huggingface.co/hf-inference/models"
)

// HFImage calls the Hugging Face text-to-image inference task directly; the
// endpoint answers with the encoded image.
type HFImage struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewHFImage(apiKey, model, baseURL string) (*HFImage, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, missingCredential("HUGGINGFACE_API_TOKEN")
	}
	if model == "" {
		model = DefaultHFImageModel
	}
	if baseURL == "" {
		baseURL = DefaultHFImageBaseURL
	}
	return &HFImage{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}, nil
}

func (h *HFImage) TextToImage(ctx context.Context, prompt string) (ImageData, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(map[string]any{"inputs": prompt}); err != nil {
		return nil, fmt.Errorf("encode text-to-image payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+h.model, buf)
	if err != nil {
		return nil, fmt.Errorf("create text-to-image request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "image/png")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, decodeHFError(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image body: %w", err)
	}
	ct := resp.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return nil, fmt.Errorf("huggingface returned json instead of an image: %s", truncate(string(body), 200))
	}
	if len(body) == 0 {
		return nil, ErrNoImage
	}
	return EncodedBytes{Data: body, MIMEType: ct}, nil
}

func decodeHFError(resp *http.Response) error {
	var apiErr struct {
		Error any `json:"error"`
	}
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != nil {
		return fmt.Errorf("huggingface api error: status %d message %v", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("huggingface api error: status %d body %s", resp.StatusCode, truncate(string(body), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
