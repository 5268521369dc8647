// Package chain is the boundary to the on-chain payment and token
// service. The core never depends on chain state: it invokes an operation,
// stores the returned opaque reference as a string, and moves on. Without
// credentials the client runs in mock mode and answers deterministically,
// so local development never needs a chain connection.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// StreamResult describes a created payment stream.
type StreamResult struct {
	StreamID string         `json:"streamId"`
	TxHash   string         `json:"txHash,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Health reports the chain service's availability.
type Health struct {
	OK      bool   `json:"ok"`
	Mock    bool   `json:"mock"`
	Message string `json:"message"`
}

// Config is the non-secret client configuration exposed for diagnostics.
type Config struct {
	Network string `json:"network"`
	RPCURL  string `json:"rpcUrl,omitempty"`
	Mock    bool   `json:"mock"`
}

// Client calls the chain service over JSON/HTTP.
type Client struct {
	rpcURL  string
	apiKey  string
	network string
	client  *http.Client
}

// New creates a chain client. An empty rpcURL selects mock mode.
func New(rpcURL, apiKey, network string) *Client {
	if network == "" {
		network = "base-sepolia"
	}
	return &Client{
		rpcURL:  rpcURL,
		apiKey:  apiKey,
		network: network,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Mock reports whether the client is running without a chain connection.
func (c *Client) Mock() bool { return c.rpcURL == "" }

// CreateStream opens a streaming payment to recipient. In mock mode the
// stream exists only as an opaque reference.
func (c *Client) CreateStream(ctx context.Context, recipient, amount string, durationSeconds int64, tokenAddress string) (*StreamResult, error) {
	if recipient == "" || amount == "" || durationSeconds <= 0 {
		return nil, fmt.Errorf("recipient, amount, and duration are required")
	}

	if c.Mock() {
		return &StreamResult{
			StreamID: "stream_mock_" + uuid.NewString(),
			Metadata: map[string]any{
				"recipient": recipient,
				"amount":    amount,
				"duration":  durationSeconds,
				"token":     tokenAddress,
				"mock":      true,
			},
		}, nil
	}

	var result StreamResult
	err := c.call(ctx, "streams", map[string]any{
		"recipient":    recipient,
		"amount":       amount,
		"duration":     durationSeconds,
		"tokenAddress": tokenAddress,
		"network":      c.network,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// WalletInfo returns the service wallet's description.
func (c *Client) WalletInfo(ctx context.Context) (map[string]any, error) {
	if c.Mock() {
		return map[string]any{"network": c.network, "mock": true}, nil
	}
	var info map[string]any
	if err := c.call(ctx, "wallet", nil, &info); err != nil {
		return nil, err
	}
	return info, nil
}

// CheckHealth probes the chain service. Mock mode is healthy by
// definition; a real endpoint is probed with a wallet lookup.
func (c *Client) CheckHealth(ctx context.Context) Health {
	if c.Mock() {
		return Health{OK: true, Mock: true, Message: "chain client in mock mode"}
	}
	if _, err := c.WalletInfo(ctx); err != nil {
		return Health{OK: false, Message: err.Error()}
	}
	return Health{OK: true, Message: "chain service reachable"}
}

// GetConfig returns the client's non-secret configuration.
func (c *Client) GetConfig() Config {
	return Config{Network: c.network, RPCURL: c.rpcURL, Mock: c.Mock()}
}

func (c *Client) call(ctx context.Context, path string, req, dst any) error {
	var body io.Reader
	if req != nil {
		b, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	method := http.MethodPost
	if req == nil {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.rpcURL+"/"+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("call chain service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chain service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode chain response: %w", err)
	}
	return nil
}
