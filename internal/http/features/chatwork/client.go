package chatwork

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.chatwork.com/v2"

// Client posts messages to Chatwork rooms. Webhooks carry no inline response
// channel, so replies go out through the REST API.
type Client struct {
	httpClient *http.Client
	apiToken   string
	baseURL    string
}

// NewClient creates a Chatwork API client.
func NewClient(apiToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiToken:   apiToken,
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, for tests.
func NewClientWithBaseURL(apiToken, baseURL string) *Client {
	c := NewClient(apiToken)
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// PostMessage sends a message to a room.
func (c *Client) PostMessage(ctx context.Context, roomID int64, body string) error {
	form := url.Values{"body": {body}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/rooms/%d/messages", c.baseURL, roomID),
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-ChatWorkToken", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("chatwork api: status %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
