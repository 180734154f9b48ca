// Package gemini implements a REST client for the Generative Language API:
// document store provisioning, file submission with its asynchronous
// indexing operation, and grounded content generation.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client is a Generative Language API client.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// Config configures the API client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new API client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing Gemini API key")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: t},
	}, nil
}

// Operation is the remote asynchronous indexing job for one submitted file.
// Done flips to true once ingestion has finished; Error carries a terminal
// operation failure.
type Operation struct {
	Name  string    `json:"name"`
	Done  bool      `json:"done"`
	Error *APIError `json:"error,omitempty"`
}

// APIError is the error object the API embeds in failed responses and
// operations.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error %d (%s): %s", e.Code, e.Status, e.Message)
}

// CreateStore provisions a new document store and returns its resource name
// (e.g. "fileSearchStores/abc123").
func (c *Client) CreateStore(ctx context.Context, displayName string) (string, error) {
	body, _ := json.Marshal(map[string]string{"displayName": displayName})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1beta/fileSearchStores", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	var out struct {
		Name string `json:"name"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("creating store: %w", err)
	}
	if out.Name == "" {
		return "", fmt.Errorf("creating store: empty store name in response")
	}
	return out.Name, nil
}

// UploadToStore submits the file at localPath to the given store using the
// resumable upload protocol (start, then upload+finalize) and returns the
// resulting indexing operation. The operation is usually not done yet;
// callers poll it via GetOperation.
func (c *Client) UploadToStore(ctx context.Context, storeName, localPath, displayName string) (*Operation, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", localPath, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", localPath, err)
	}

	uploadURL, err := c.startUpload(ctx, storeName, displayName, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("starting upload: %w", err)
	}

	op, err := c.finishUpload(ctx, uploadURL, f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("uploading %s: %w", displayName, err)
	}
	return op, nil
}

// startUpload opens a resumable upload session and returns the session URL.
func (c *Client) startUpload(ctx context.Context, storeName, displayName string, size int64) (string, error) {
	body, _ := json.Marshal(map[string]string{"display_name": displayName})

	url := fmt.Sprintf("%s/upload/v1beta/%s:uploadToFileSearchStore", c.baseURL, storeName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.FormatInt(size, 10))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", "application/octet-stream")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", c.responseError(resp)
	}

	uploadURL := resp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return "", fmt.Errorf("no upload URL in response")
	}
	return uploadURL, nil
}

// finishUpload sends the file bytes to the session URL and finalizes it.
// The finalize response body is the indexing operation.
func (c *Client) finishUpload(ctx context.Context, uploadURL string, r io.Reader, size int64) (*Operation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, r)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")
	req.Header.Set("X-Goog-Upload-Offset", "0")

	var op Operation
	if err := c.do(req, &op); err != nil {
		return nil, err
	}
	if op.Name == "" {
		return nil, fmt.Errorf("empty operation name in response")
	}
	return &op, nil
}

// GetOperation fetches the current state of an indexing operation by its
// resource name.
func (c *Client) GetOperation(ctx context.Context, name string) (*Operation, error) {
	url := c.baseURL + "/v1beta/" + name
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	var op Operation
	if err := c.do(req, &op); err != nil {
		return nil, fmt.Errorf("getting operation %s: %w", name, err)
	}
	return &op, nil
}

// systemInstruction directs the assistant to ground its answers in the
// indexed documents and to say so and fall back to general knowledge when
// the documents do not cover the question.
const systemInstruction = "You are DocuChat, a virtual assistant answering questions " +
	"about the organization's reference documents. Prioritize answers grounded in the " +
	"documents that have been provided. If the information is not present in the " +
	"documents, state that clearly and answer at a general level."

// GenerateGrounded issues one generation request for message with the
// FileSearch tool bound to storeName and returns the model's text reply.
// An empty string means the model produced no text; the caller decides on
// a fallback.
func (c *Client) GenerateGrounded(ctx context.Context, storeName, message string) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}

	payload := map[string]any{
		"system_instruction": content{Parts: []part{{Text: systemInstruction}}},
		"contents":           []content{{Parts: []part{{Text: message}}}},
		"tools": []map[string]any{
			{
				"file_search": map[string]any{
					"file_search_store_names": []string{storeName},
				},
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	var out struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := c.do(req, &out); err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	return sb.String(), nil
}

// do executes the request and decodes a JSON response into out. Non-2xx
// responses are turned into errors carrying the API's own description.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return c.responseError(resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// responseError extracts the API error object from a failed response,
// falling back to the HTTP status when the body is not parsable.
func (c *Client) responseError(resp *http.Response) error {
	payload, _ := io.ReadAll(resp.Body)

	var wrapped struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Error != nil {
		return wrapped.Error
	}
	return fmt.Errorf("gemini api error: %s %s: %s", resp.Request.Method, path.Base(resp.Request.URL.Path), resp.Status)
}
