package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"Ieum/config"
)

// Message is the Expo push relay payload: {to, sound, title, body, data}.
type Message struct {
	To    string                 `json:"to"`
	Sound string                 `json:"sound"`
	Title string                 `json:"title"`
	Body  string                 `json:"body"`
	Data  map[string]interface{} `json:"data,omitempty"`
}

// Sender delivers one push message to a device token.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Client posts messages to the Expo push relay.
type Client struct {
	url        string
	httpClient *http.Client
}

var (
	defaultClient *Client
	once          sync.Once
)

func Init() {
	once.Do(func() {
		defaultClient = NewClient(
			config.Cfg.ExpoPushURL,
			time.Duration(config.Cfg.ExpoPushTimeout)*time.Second,
		)
	})
}

// Default returns the process-wide client. Init must run first.
func Default() *Client {
	if defaultClient == nil {
		panic("push client not initialized, call push.Init() first")
	}
	return defaultClient
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("push message has no device token")
	}
	if msg.Sound == "" {
		msg.Sound = "default"
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call push relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("push relay returned %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
