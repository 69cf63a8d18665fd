// Package vercel provides read-only lookups against the hosting platform's REST API.
package vercel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/artpar/vercel-deploy-task/internal/core/domain"
)

// =============================================================================
// Client Interface
// =============================================================================

// Client resolves owner and project metadata. Both calls are idempotent and
// safe to issue concurrently.
type Client interface {
	// GetStagingPrefix returns the staging prefix of a team or personal account.
	GetStagingPrefix(ctx context.Context, ownerID, token string) (string, error)

	// GetProject returns the settings of a project owned by ownerID.
	GetProject(ctx context.Context, projectID, ownerID, token string) (domain.Project, error)
}

// =============================================================================
// HTTP Client Implementation
// =============================================================================

// DefaultBaseURL is the public platform API.
const DefaultBaseURL = "https://api.vercel.com"

// Config holds configuration for the HTTP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// HTTPClient implements Client over the platform REST API.
type HTTPClient struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
}

// NewClient creates a platform API client.
func NewClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		timeout:   cfg.Timeout,
		transport: http.DefaultTransport,
	}
}

type teamResponse struct {
	StagingPrefix string `json:"stagingPrefix"`
}

type userResponse struct {
	User struct {
		StagingPrefix string `json:"stagingPrefix"`
	} `json:"user"`
}

// errorResponse covers both error shapes the API returns.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// GetStagingPrefix implements Client. Team identifiers are looked up through
// the teams endpoint, anything else as the token's own user.
func (c *HTTPClient) GetStagingPrefix(ctx context.Context, ownerID, token string) (string, error) {
	if domain.IsTeamID(ownerID) {
		var team teamResponse
		if err := c.get(ctx, "get team", "/v2/teams/"+url.PathEscape(ownerID), nil, token, &team); err != nil {
			return "", err
		}
		return team.StagingPrefix, nil
	}

	var user userResponse
	if err := c.get(ctx, "get user", "/v2/user", nil, token, &user); err != nil {
		return "", err
	}
	return user.User.StagingPrefix, nil
}

// GetProject implements Client.
func (c *HTTPClient) GetProject(ctx context.Context, projectID, ownerID, token string) (domain.Project, error) {
	var query url.Values
	if domain.IsTeamID(ownerID) {
		query = url.Values{"teamId": {ownerID}}
	}

	var project domain.Project
	if err := c.get(ctx, "get project", "/v9/projects/"+url.PathEscape(projectID), query, token, &project); err != nil {
		return domain.Project{}, err
	}
	return project, nil
}

func (c *HTTPClient) get(ctx context.Context, op, path string, query url.Values, token string, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient(token).Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to send request: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &domain.LookupError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// httpClient returns a client that sends token as a bearer credential.
func (c *HTTPClient) httpClient(token string) *http.Client {
	return &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   c.transport,
		},
	}
}

func errorMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Error.Message != "" {
			return e.Error.Message
		}
		if e.Message != "" {
			return e.Message
		}
	}
	return strings.TrimSpace(string(body))
}
