// Package transport maintains the client's view of the chat channel: a
// REST client for the channel's append-only message log and a polling
// cursor loop that delivers each new remote message exactly once per
// process.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production Discord REST endpoint.
const DefaultBaseURL = "https://discord.com/api/v10"

// fetchLimit caps how many messages a single poll requests.
const fetchLimit = 100

// Author identifies who wrote a channel message.
type Author struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bot      bool   `json:"bot"`
}

// Message is the inbound message envelope as the transport delivers it.
// The sync core only needs ID, Content and authorship.
type Message struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
	Author    Author `json:"author"`
}

// Client is an HTTP client for a single Discord channel.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	channelID  string
}

// NewClient creates a channel-scoped REST client. An empty baseURL
// selects the production endpoint; tests point it at a local server.
func NewClient(baseURL, token, channelID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		token:     token,
		channelID: channelID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// LatestMessage returns the most recent message in the channel, or nil
// when the channel is empty. Used once to seed the poll cursor.
func (c *Client) LatestMessage(ctx context.Context) (*Message, error) {
	var messages []Message
	path := fmt.Sprintf("/channels/%s/messages?limit=1", c.channelID)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, fmt.Errorf("latest message request failed: %w", err)
	}
	if len(messages) == 0 {
		return nil, nil
	}
	return &messages[0], nil
}

// MessagesAfter returns the messages newer than the cursor, oldest
// first. Discord serves them newest first; the caller relies on
// chronological order, so they are reversed here.
func (c *Client) MessagesAfter(ctx context.Context, cursor string) ([]Message, error) {
	var messages []Message
	path := fmt.Sprintf("/channels/%s/messages?limit=%d&after=%s",
		c.channelID, fetchLimit, url.QueryEscape(cursor))
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}
	sortChronological(messages)
	return messages, nil
}

// SendMessage posts content to the channel and returns the
// remote-assigned message identifier.
func (c *Client) SendMessage(ctx context.Context, content string) (string, error) {
	body := map[string]string{"content": content}
	var sent Message
	path := fmt.Sprintf("/channels/%s/messages", c.channelID)
	if err := c.doRequest(ctx, http.MethodPost, path, body, &sent); err != nil {
		return "", fmt.Errorf("send message request failed: %w", err)
	}
	return sent.ID, nil
}

// doRequest performs one HTTP exchange against the Discord API.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// sortChronological orders messages oldest first by snowflake id.
func sortChronological(messages []Message) {
	for i := 0; i < len(messages)/2; i++ {
		j := len(messages) - 1 - i
		messages[i], messages[j] = messages[j], messages[i]
	}
	// Discord guarantees newest-first, so a reversal suffices. Guard
	// against out-of-order responses anyway: bubble any stragglers.
	for i := 1; i < len(messages); i++ {
		for j := i; j > 0 && compareIDs(messages[j].ID, messages[j-1].ID) < 0; j-- {
			messages[j], messages[j-1] = messages[j-1], messages[j]
		}
	}
}

// compareIDs orders two snowflake identifiers. Snowflakes are numeric
// strings; fall back to lexicographic comparison on anything else.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
