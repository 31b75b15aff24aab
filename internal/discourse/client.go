// Package discourse wraps the admin user-creation endpoint of a Discourse
// site behind a single operation that never lets transport or API failures
// escape as errors — they come back folded into the Outcome.
package discourse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ashishdungdung/discourse-create-bulk-users/internal/config"
)

// NewUser is the payload for one account-creation attempt.
type NewUser struct {
	Name     string
	Email    string
	Username string
	Password string
}

// Outcome reports how a single creation attempt ended. UserID is nil when
// the API assigned none (or the attempt failed).
type Outcome struct {
	Success bool
	Message string
	UserID  *int
}

// Client issues account-creation requests against {SiteURL}/users.json.
type Client struct {
	cfg  config.Config
	http *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

type createRequest struct {
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Username               string `json:"username"`
	Password               string `json:"password"`
	Active                 bool   `json:"active"`
	Approved               bool   `json:"approved"`
	SuppressWelcomeMessage bool   `json:"suppress_welcome_message"`
}

type createResponse struct {
	Success bool            `json:"success"`
	UserID  *int            `json:"user_id"`
	Errors  json.RawMessage `json:"errors"`
	Error   string          `json:"error"`
}

// CreateUser issues at most one request per call. In dry-run mode nothing is
// sent and a canned success comes back.
func (c *Client) CreateUser(ctx context.Context, user NewUser) Outcome {
	if c.cfg.DryRun {
		return Outcome{Success: true, Message: "Dry run: request not sent"}
	}

	payload, err := json.Marshal(createRequest{
		Name:                   user.Name,
		Email:                  user.Email,
		Username:               user.Username,
		Password:               user.Password,
		Active:                 c.cfg.Active,
		Approved:               c.cfg.Approved,
		SuppressWelcomeMessage: c.cfg.SuppressWelcome,
	})
	if err != nil {
		return Outcome{Message: fmt.Sprintf("Request error: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.SiteURL+"/users.json", bytes.NewReader(payload))
	if err != nil {
		return Outcome{Message: fmt.Sprintf("Request error: %v", err)}
	}
	req.Header.Set("Api-Key", c.cfg.APIKey)
	req.Header.Set("Api-Username", c.cfg.APIUsername)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{Message: fmt.Sprintf("Request error: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{Message: fmt.Sprintf("Request error: %v", err)}
	}

	var parsed createResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &parsed); err != nil {
			// Not JSON; keep the raw text as the error detail.
			parsed = createResponse{Error: string(body)}
		}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if ok && parsed.Success {
		return Outcome{Success: true, Message: "Created", UserID: parsed.UserID}
	}
	return Outcome{Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, errorText(parsed, body))}
}

// errorText digs the failure detail out of the response: an "errors" list is
// semicolon-joined, then the "error" field, then the raw body.
func errorText(parsed createResponse, body []byte) string {
	if len(parsed.Errors) > 0 {
		var list []any
		if err := json.Unmarshal(parsed.Errors, &list); err == nil && len(list) > 0 {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				parts = append(parts, fmt.Sprint(item))
			}
			return strings.Join(parts, "; ")
		}
		var single string
		if err := json.Unmarshal(parsed.Errors, &single); err == nil && single != "" {
			return single
		}
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return string(body)
}
