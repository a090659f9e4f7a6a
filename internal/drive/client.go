// Package drive is the Google Drive implementation of the scanner's remote
// storage client: folder listings with pagination, public sharing, and
// multipart uploads, authenticated with either a service account or an
// authorized-user refresh token.
package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/gofoil/internal/common"
	"github.com/dmitrijs2005/gofoil/internal/scanner"
)

const (
	defaultAPIBase = "https://www.googleapis.com"
	listPageSize   = "1000"
	maxRetries     = 3
)

// Options configure a Client. Zero values select the production Google
// endpoints and a default HTTP client.
type Options struct {
	CredentialsPath string
	TokenPath       string

	// APIBase and TokenURL override the Google endpoints in tests.
	APIBase  string
	TokenURL string

	HTTPClient *http.Client
}

// Client talks to the Drive v3 REST API. It satisfies scanner.Client.
type Client struct {
	httpClient *http.Client
	apiBase    string
	tokens     *tokenSource

	mu     sync.Mutex
	token  string
	expiry time.Time
}

var _ scanner.Client = (*Client)(nil)

// NewClient validates the credential files and builds a client. No network
// activity happens until EnsureAuthenticated or the first API call.
func NewClient(opts Options) (*Client, error) {
	tokens, err := newTokenSource(opts.CredentialsPath, opts.TokenPath, opts.TokenURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	apiBase := opts.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}

	return &Client{httpClient: httpClient, apiBase: apiBase, tokens: tokens}, nil
}

// EnsureAuthenticated fetches an access token unless a still-valid one is
// cached. Safe to call repeatedly; only the first call of a run does work.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiry) {
		return nil
	}

	token, expiry, err := c.tokens.fetch(ctx, c.httpClient)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrAuthFailed, err)
	}
	c.token = token
	c.expiry = expiry
	return nil
}

type listResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Files         []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		MimeType string `json:"mimeType"`
		Size     string `json:"size"`
		Shared   bool   `json:"shared"`
	} `json:"files"`
}

// ListChildren lists all direct children of a folder, following
// nextPageToken until the listing is exhausted. Entries keep the order the
// API returned them in, across page boundaries.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]scanner.FileInfo, []string, error) {
	var files []scanner.FileInfo
	var folders []string
	var pageToken string

	for {
		query := url.Values{
			"q":                         {fmt.Sprintf("'%s' in parents and trashed = false", folderID)},
			"fields":                    {"nextPageToken, files(id, name, mimeType, size, shared)"},
			"pageSize":                  {listPageSize},
			"supportsAllDrives":         {"true"},
			"includeItemsFromAllDrives": {"true"},
		}
		if pageToken != "" {
			query.Set("pageToken", pageToken)
		}

		var page listResponse
		if err := c.getJSON(ctx, "/drive/v3/files", query, &page); err != nil {
			return nil, nil, err
		}

		for _, f := range page.Files {
			if f.MimeType == common.FolderMimeType {
				folders = append(folders, f.ID)
				continue
			}
			files = append(files, scanner.FileInfo{ID: f.ID, Name: f.Name, Size: f.Size, Shared: f.Shared})
		}

		if page.NextPageToken == "" {
			return files, folders, nil
		}
		pageToken = page.NextPageToken
	}
}

// Share grants public read access. Drive treats a duplicate "anyone" grant
// as a no-op, so the call is idempotent.
func (c *Client) Share(ctx context.Context, fileID string) error {
	body := []byte(`{"role":"reader","type":"anyone"}`)
	path := fmt.Sprintf("/drive/v3/files/%s/permissions", url.PathEscape(fileID))
	query := url.Values{"supportsAllDrives": {"true"}}

	resp, err := c.do(ctx, http.MethodPost, path, query, "application/json", body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

type uploadResponse struct {
	ID     string `json:"id"`
	Shared bool   `json:"shared"`
}

// Upload stores a local file via the multipart upload endpoint. An empty
// folderID targets the drive root ("My Drive").
func (c *Client) Upload(ctx context.Context, path string, folderID string) (string, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read upload source: %w", err)
	}

	meta := map[string]any{"name": filepath.Base(path)}
	if folderID != "" {
		meta["parents"] = []string{folderID}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return "", false, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	metaPart, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/json; charset=UTF-8"}})
	if err != nil {
		return "", false, err
	}
	if _, err := metaPart.Write(metaJSON); err != nil {
		return "", false, err
	}

	filePart, err := mw.CreatePart(textproto.MIMEHeader{"Content-Type": {"application/octet-stream"}})
	if err != nil {
		return "", false, err
	}
	if _, err := filePart.Write(content); err != nil {
		return "", false, err
	}
	if err := mw.Close(); err != nil {
		return "", false, err
	}

	query := url.Values{
		"uploadType":        {"multipart"},
		"fields":            {"id, shared"},
		"supportsAllDrives": {"true"},
	}
	contentType := "multipart/related; boundary=" + mw.Boundary()

	resp, err := c.do(ctx, http.MethodPost, "/upload/drive/v3/files", query, contentType, buf.Bytes())
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	var up uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&up); err != nil {
		return "", false, fmt.Errorf("decode upload response: %w", err)
	}
	return up.ID, up.Shared, nil
}

// getJSON performs an authenticated GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// do issues an authenticated request, retrying transient failures (429 and
// 5xx) with capped exponential backoff.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body []byte) (*http.Response, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}

	fullURL := c.apiBase + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoffDelay(attempt)):
			}
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		req.Header.Set("Authorization", "Bearer "+c.token)
		c.mu.Unlock()
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return resp, nil
		}

		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		lastErr = fmt.Errorf("%s %s: %s: %s", method, path, resp.Status, snippet)

		if !retryable(resp.StatusCode) {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

// backoffJitter spreads retry delays by up to ±20% so concurrent runs
// hitting the same rate limit do not retry in lockstep.
const backoffJitter = 0.2

// backoffDelay doubles per attempt from 500ms, capped at 5s, with jitter.
func backoffDelay(attempt int) time.Duration {
	delay := 500 * time.Millisecond << uint(attempt-1)
	if delay > 5*time.Second {
		delay = 5 * time.Second
	}
	factor := 1 + (rand.Float64()*2-1)*backoffJitter
	return time.Duration(float64(delay) * factor)
}
