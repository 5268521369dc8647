package agent

import (
	"context"
	"encoding/json"
)

// Fallback is the deterministic oracle used when no remote oracle is
// configured or a remote call fails. Its answers are generic but
// well-formed, so callers never have to special-case an absent oracle.
type Fallback struct{}

func (Fallback) ValidateIdea(_ context.Context, _ IdeaValidationRequest) (*IdeaValidationResult, error) {
	return &IdeaValidationResult{
		FeasibilityScore:      65,
		MarketSize:            "Medium",
		CompetitionLevel:      "Medium",
		DevelopmentComplexity: "Moderate",
		TimeToMarket:          "6-12 months",
		EstimatedCost:         "$50K - $200K",
		Recommendations: []string{
			"Conduct thorough market research",
			"Validate idea with potential customers",
			"Assess technical feasibility",
			"Research competitive landscape",
		},
		Risks: []string{
			"Market uncertainty",
			"Competition from established players",
			"Technical challenges",
			"Resource constraints",
		},
		Opportunities: []string{
			"First-mover advantage in niche market",
			"Growing market demand",
			"Technology advancement opportunities",
			"Strategic partnerships",
		},
	}, nil
}

func (Fallback) MatchBuilders(_ context.Context, _ BuilderMatchingRequest) (json.RawMessage, error) {
	return marshalRaw(map[string]any{
		"matches": []any{},
		"note":    "Builder matching is unavailable; try again later.",
	})
}

func (Fallback) AnalyzeMarket(_ context.Context, req MarketAnalysisRequest) (json.RawMessage, error) {
	return marshalRaw(map[string]any{
		"industry":   req.Industry,
		"growth":     "Moderate",
		"confidence": "low",
		"note":       "Market analysis is unavailable; figures are placeholders.",
	})
}

func (Fallback) GeneratePitch(_ context.Context, req PitchGenerationRequest) (json.RawMessage, error) {
	return marshalRaw(map[string]any{
		"pitch": "Pitch generation is unavailable. Summarize the problem, " +
			"your solution, traction, and the ask of " + req.FundingAmount + ".",
	})
}

func (Fallback) FindFunding(_ context.Context, req FundingFinderRequest) (json.RawMessage, error) {
	return marshalRaw(map[string]any{
		"sources": []any{},
		"stage":   req.Stage,
		"note":    "Funding discovery is unavailable; try again later.",
	})
}

func marshalRaw(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
