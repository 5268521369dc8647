package handler

import (
	"fmt"
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/agent"
)

// AgentHandler serves the /api/ai-agents endpoint, passing requests
// through to the oracle. Responses wrap the oracle's document under
// "data".
type AgentHandler struct {
	oracle agent.Oracle
}

func NewAgentHandler(oracle agent.Oracle) *AgentHandler {
	return &AgentHandler{oracle: oracle}
}

type agentRequest struct {
	Type string `json:"type"`

	// validate_idea
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	TargetMarket string `json:"target_market"`

	// match_builders
	RequiredSkills []string `json:"required_skills"`
	ProjectBudget  string   `json:"project_budget"`
	Timeline       string   `json:"timeline"`
	ProjectType    string   `json:"project_type"`

	// analyze_market, find_funding
	Industry       string `json:"industry"`
	Geography      string `json:"geography"`
	TargetAudience string `json:"target_audience"`
	Stage          string `json:"stage"`

	// generate_pitch
	IdeaSummary     string `json:"idea_summary"`
	TargetInvestors string `json:"target_investors"`
	FundingAmount   string `json:"funding_amount"`
	UseOfFunds      string `json:"use_of_funds"`
}

func (h *AgentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Type == "" {
		writeFailure(w, http.StatusBadRequest, "AI agent type is required")
		return
	}

	var (
		data any
		err  error
	)
	switch req.Type {
	case "validate_idea":
		data, err = h.oracle.ValidateIdea(r.Context(), agent.IdeaValidationRequest{
			Title:        req.Title,
			Description:  req.Description,
			Category:     req.Category,
			TargetMarket: req.TargetMarket,
		})
	case "match_builders":
		data, err = h.oracle.MatchBuilders(r.Context(), agent.BuilderMatchingRequest{
			RequiredSkills: req.RequiredSkills,
			ProjectBudget:  req.ProjectBudget,
			Timeline:       req.Timeline,
			ProjectType:    req.ProjectType,
		})
	case "analyze_market":
		data, err = h.oracle.AnalyzeMarket(r.Context(), agent.MarketAnalysisRequest{
			Industry:       req.Industry,
			Geography:      req.Geography,
			TargetAudience: req.TargetAudience,
		})
	case "generate_pitch":
		data, err = h.oracle.GeneratePitch(r.Context(), agent.PitchGenerationRequest{
			IdeaSummary:     req.IdeaSummary,
			TargetInvestors: req.TargetInvestors,
			FundingAmount:   req.FundingAmount,
			UseOfFunds:      req.UseOfFunds,
		})
	case "find_funding":
		data, err = h.oracle.FindFunding(r.Context(), agent.FundingFinderRequest{
			Stage:         req.Stage,
			Industry:      req.Industry,
			FundingAmount: req.FundingAmount,
			Geography:     req.Geography,
		})
	default:
		writeFailure(w, http.StatusBadRequest, fmt.Sprintf("Unknown AI agent operation: %s", req.Type))
		return
	}
	if err != nil {
		writeServiceError(w, err, "Agent unavailable")
		return
	}
	writeSuccess(w, map[string]any{"data": data})
}
