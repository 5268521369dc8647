// Package agent is the boundary to the AI scoring/generation oracle. The
// core treats it as an opaque request/response service: results enrich
// repository fields but are never required for a write to succeed, and an
// unavailable oracle degrades to deterministic fallback assessments.
package agent

import (
	"context"
	"encoding/json"
)

// IdeaValidationRequest asks the oracle to assess a business idea.
type IdeaValidationRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	TargetMarket string `json:"target_market,omitempty"`
}

// IdeaValidationResult is the oracle's assessment of an idea.
type IdeaValidationResult struct {
	FeasibilityScore      int      `json:"feasibilityScore"`
	MarketSize            string   `json:"marketSize"`
	CompetitionLevel      string   `json:"competitionLevel"`
	DevelopmentComplexity string   `json:"developmentComplexity"`
	TimeToMarket          string   `json:"timeToMarket"`
	EstimatedCost         string   `json:"estimatedCost"`
	Recommendations       []string `json:"recommendations"`
	Risks                 []string `json:"risks"`
	Opportunities         []string `json:"opportunities"`
}

// BuilderMatchingRequest asks for executors suited to a project.
type BuilderMatchingRequest struct {
	RequiredSkills []string `json:"required_skills"`
	ProjectBudget  string   `json:"project_budget"`
	Timeline       string   `json:"timeline"`
	ProjectType    string   `json:"project_type,omitempty"`
}

// MarketAnalysisRequest asks for an industry analysis.
type MarketAnalysisRequest struct {
	Industry       string `json:"industry"`
	Geography      string `json:"geography,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
}

// PitchGenerationRequest asks for an investor pitch draft.
type PitchGenerationRequest struct {
	IdeaSummary     string `json:"idea_summary"`
	TargetInvestors string `json:"target_investors"`
	FundingAmount   string `json:"funding_amount"`
	UseOfFunds      string `json:"use_of_funds,omitempty"`
}

// FundingFinderRequest asks for funding sources matching a venture.
type FundingFinderRequest struct {
	Stage         string `json:"stage"`
	Industry      string `json:"industry"`
	FundingAmount string `json:"funding_amount"`
	Geography     string `json:"geography,omitempty"`
}

// Oracle is the scoring/generation service. Only idea validation has a
// typed result; the remaining operations pass the oracle's document
// through untouched.
type Oracle interface {
	ValidateIdea(ctx context.Context, req IdeaValidationRequest) (*IdeaValidationResult, error)
	MatchBuilders(ctx context.Context, req BuilderMatchingRequest) (json.RawMessage, error)
	AnalyzeMarket(ctx context.Context, req MarketAnalysisRequest) (json.RawMessage, error)
	GeneratePitch(ctx context.Context, req PitchGenerationRequest) (json.RawMessage, error)
	FindFunding(ctx context.Context, req FundingFinderRequest) (json.RawMessage, error)
}

// New returns an HTTP-backed oracle when a base URL is configured, and the
// deterministic fallback otherwise.
func New(baseURL string) Oracle {
	if baseURL == "" {
		return Fallback{}
	}
	return &HTTPOracle{baseURL: baseURL, fallback: Fallback{}}
}
