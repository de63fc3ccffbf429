package electron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zkat/electron-collider/internal/messages"
)

const (
	defaultAPIBaseURL = "https://api.github.com/repos/electron/electron"
	tagsPerPage       = 100
	userAgent         = "collider"
)

var apiHTTPClient = &http.Client{Timeout: 30 * time.Second}

// Client fetches release metadata from the Electron GitHub repository.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a catalog client. token may be empty for anonymous access.
func NewClient(token string) *Client {
	return &Client{
		baseURL:    defaultAPIBaseURL,
		token:      token,
		httpClient: apiHTTPClient,
	}
}

// Release is remote release metadata, held only for the duration of one
// resolution. Assets preserve the order the API reports them in.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

type tagEntry struct {
	Name string `json:"name"`
}

type apiErrorBody struct {
	Message string `json:"message"`
}

// ListTags returns one page of tag names, newest first. Pages are indexed
// from 0 and the first empty page terminates pagination.
func (c *Client) ListTags(ctx context.Context, page int) ([]string, error) {
	endpoint := fmt.Sprintf("%s/tags?per_page=%d&page=%d", c.baseURL, tagsPerPage, page)
	var entries []tagEntry
	if err := c.getJSON(ctx, endpoint, &entries); err != nil {
		return nil, err
	}
	tags := make([]string, 0, len(entries))
	for _, entry := range entries {
		tags = append(tags, entry.Name)
	}
	return tags, nil
}

// GetReleaseByTag fetches the release published for tag. A 404 becomes
// ReleaseNotFoundError so scanning callers can skip to the next candidate.
func (c *Client) GetReleaseByTag(ctx context.Context, tag string) (*Release, error) {
	endpoint := fmt.Sprintf("%s/releases/tags/%s", c.baseURL, url.PathEscape(tag))
	var release Release
	if err := c.getJSON(ctx, endpoint, &release); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, &ReleaseNotFoundError{Tag: tag}
		}
		return nil, err
	}
	return &release, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf(messages.ElectronCreateRequestErrFmt, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf(messages.ElectronRequestFailedFmt, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return classifyAPIError(resp, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf(messages.ElectronDecodeResponseErrFmt, endpoint, err)
	}
	return nil
}

// classifyAPIError translates a non-200 API response into the engine's error
// taxonomy: rate-limit bodies become RateLimitError, everything else a
// generic APIError.
func classifyAPIError(resp *http.Response, endpoint string) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf(messages.ElectronReadErrorBodyFmt, endpoint, err)
	}
	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)
	if isRateLimitMessage(parsed.Message) || isRateLimitResponse(resp) {
		message := parsed.Message
		if message == "" {
			message = resp.Status
		}
		return &RateLimitError{Message: message}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Message:    parsed.Message,
	}
}

// isRateLimitResponse confirms unauthenticated exhaustion via headers:
// GitHub reports 403 with X-RateLimit-Remaining: 0, or a plain 429.
func isRateLimitResponse(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if resp.StatusCode != http.StatusForbidden {
		return false
	}
	remaining, err := strconv.Atoi(resp.Header.Get("X-RateLimit-Remaining"))
	if err != nil {
		return false
	}
	return remaining == 0
}
