// Package client talks to the database agent over HTTP.
//
// The contract is a single call: POST {base}/chat with {"question"} and
// a JSON reply of the form {"response": {text, barchart, piechart}}.
// There is no retry. A timeout only applies when one is configured.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/DachengChen/askdb/applog"
	"github.com/DachengChen/askdb/chat"
	"github.com/google/uuid"
)

// SessionHeader carries the per-process session id so the backend can
// correlate requests from one chat.
const SessionHeader = "X-Askdb-Session"

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the body returned by POST /chat.
type ChatResponse struct {
	Response *chat.Payload `json:"response"`
}

// Client implements chat.Asker against a remote agent.
type Client struct {
	baseURL   string
	sessionID string
	http      *http.Client
}

var _ chat.Asker = (*Client)(nil)

// New creates a client for the agent at baseURL. A zero timeout means
// requests wait for as long as the backend takes.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: uuid.NewString(),
		http:      &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the agent base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// SessionID returns the id sent with every request.
func (c *Client) SessionID() string { return c.sessionID }

// Ask sends one question and decodes the agent's payload. A reply
// without a usable "response" field yields an empty payload. The HTTP status is
// not inspected: a JSON error body simply carries no response.
func (c *Client) Ask(ctx context.Context, question string) (*chat.Payload, error) {
	body, err := json.Marshal(ChatRequest{Question: question})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, c.sessionID)

	applog.Event("chat", "POST %s/chat question=%q", c.baseURL, question)

	resp, err := c.http.Do(req)
	if err != nil {
		applog.Error("agent request failed: %v", err)
		return nil, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		applog.Error("read agent reply: %v", err)
		return nil, fmt.Errorf("read agent reply: %w", err)
	}
	applog.Event("chat", "reply status=%d body=%s", resp.StatusCode, raw)

	// Only malformed JSON is an error. A document of another shape, such
	// as a bare array, simply has no response.
	var decoded ChatResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			applog.Error("decode agent reply: %v", err)
			return nil, fmt.Errorf("decode agent reply: %w", err)
		}
		decoded = ChatResponse{}
	}

	if decoded.Response == nil {
		return &chat.Payload{}, nil
	}
	return decoded.Response, nil
}
