package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPOracle calls a remote oracle over JSON/HTTP. Any transport or
// protocol failure degrades to the deterministic fallback — enrichment is
// optional, so an unreachable oracle must never surface as a caller error.
type HTTPOracle struct {
	baseURL  string
	client   *http.Client
	fallback Fallback
}

func (o *HTTPOracle) httpClient() *http.Client {
	if o.client != nil {
		return o.client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (o *HTTPOracle) ValidateIdea(ctx context.Context, req IdeaValidationRequest) (*IdeaValidationResult, error) {
	var result IdeaValidationResult
	if err := o.call(ctx, "validate_idea", req, &result); err != nil {
		slog.Warn("oracle unavailable, using fallback", "operation", "validate_idea", "error", err)
		return o.fallback.ValidateIdea(ctx, req)
	}
	result.FeasibilityScore = clampScore(result.FeasibilityScore)
	return &result, nil
}

func (o *HTTPOracle) MatchBuilders(ctx context.Context, req BuilderMatchingRequest) (json.RawMessage, error) {
	return o.callRaw(ctx, "match_builders", req, func() (json.RawMessage, error) {
		return o.fallback.MatchBuilders(ctx, req)
	})
}

func (o *HTTPOracle) AnalyzeMarket(ctx context.Context, req MarketAnalysisRequest) (json.RawMessage, error) {
	return o.callRaw(ctx, "analyze_market", req, func() (json.RawMessage, error) {
		return o.fallback.AnalyzeMarket(ctx, req)
	})
}

func (o *HTTPOracle) GeneratePitch(ctx context.Context, req PitchGenerationRequest) (json.RawMessage, error) {
	return o.callRaw(ctx, "generate_pitch", req, func() (json.RawMessage, error) {
		return o.fallback.GeneratePitch(ctx, req)
	})
}

func (o *HTTPOracle) FindFunding(ctx context.Context, req FundingFinderRequest) (json.RawMessage, error) {
	return o.callRaw(ctx, "find_funding", req, func() (json.RawMessage, error) {
		return o.fallback.FindFunding(ctx, req)
	})
}

func (o *HTTPOracle) callRaw(ctx context.Context, operation string, req any, fallback func() (json.RawMessage, error)) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := o.call(ctx, operation, req, &raw); err != nil {
		slog.Warn("oracle unavailable, using fallback", "operation", operation, "error", err)
		return fallback()
	}
	return raw, nil
}

func (o *HTTPOracle) call(ctx context.Context, operation string, req, dst any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.baseURL+"/agents/"+operation, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient().Do(httpReq)
	if err != nil {
		return fmt.Errorf("call oracle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read oracle response: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode oracle response: %w", err)
	}
	return nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
