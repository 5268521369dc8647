package handler

import (
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

// IdeaHandler serves the /api/ideas endpoint. Operations are dispatched on
// the request body's "operation" field.
type IdeaHandler struct {
	ideas *service.IdeaService
}

func NewIdeaHandler(ideas *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideas: ideas}
}

type ideaRequest struct {
	Operation             string          `json:"operation"`
	IdeaID                string          `json:"ideaId"`
	CreatorID             string          `json:"creatorId"`
	Title                 string          `json:"title"`
	Description           string          `json:"description"`
	Category              string          `json:"category"`
	Tags                  []string        `json:"tags"`
	FeasibilityScore      int             `json:"feasibilityScore"`
	MarketSize            string          `json:"marketSize"`
	CompetitionLevel      string          `json:"competitionLevel"`
	DevelopmentComplexity string          `json:"developmentComplexity"`
	FundingRequired       float64         `json:"fundingRequired"`
	EquityOffered         float64         `json:"equityOffered"`
	NFTTokenID            string          `json:"nftTokenId"`
	Updates               *ideaUpdateBody `json:"updates"`
}

type ideaUpdateBody struct {
	Title                 *string   `json:"title"`
	Description           *string   `json:"description"`
	Category              *string   `json:"category"`
	Tags                  *[]string `json:"tags"`
	FeasibilityScore      *int      `json:"feasibilityScore"`
	MarketSize            *string   `json:"marketSize"`
	CompetitionLevel      *string   `json:"competitionLevel"`
	DevelopmentComplexity *string   `json:"developmentComplexity"`
	FundingRequired       *float64  `json:"fundingRequired"`
	EquityOffered         *float64  `json:"equityOffered"`
	Status                *string   `json:"status"`
	NFTTokenID            *string   `json:"nftTokenId"`
}

func (b *ideaUpdateBody) toPatch() domain.IdeaPatch {
	patch := domain.IdeaPatch{
		Title:                 b.Title,
		Description:           b.Description,
		Category:              b.Category,
		Tags:                  b.Tags,
		FeasibilityScore:      b.FeasibilityScore,
		MarketSize:            b.MarketSize,
		CompetitionLevel:      b.CompetitionLevel,
		DevelopmentComplexity: b.DevelopmentComplexity,
		FundingRequired:       b.FundingRequired,
		EquityOffered:         b.EquityOffered,
		NFTTokenID:            b.NFTTokenID,
	}
	if b.Status != nil {
		status := domain.IdeaStatus(*b.Status)
		patch.Status = &status
	}
	return patch
}

func (h *IdeaHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ideaRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	callerID := UserIDFromContext(r.Context())

	switch req.Operation {
	case "create":
		idea, err := h.ideas.Create(r.Context(), callerID, service.CreateIdeaInput{
			Title:                 req.Title,
			Description:           req.Description,
			Category:              req.Category,
			Tags:                  req.Tags,
			FeasibilityScore:      req.FeasibilityScore,
			MarketSize:            req.MarketSize,
			CompetitionLevel:      req.CompetitionLevel,
			DevelopmentComplexity: req.DevelopmentComplexity,
			FundingRequired:       req.FundingRequired,
			EquityOffered:         req.EquityOffered,
			NFTTokenID:            req.NFTTokenID,
		})
		if err != nil {
			writeServiceError(w, err, "Idea not found")
			return
		}
		writeSuccess(w, map[string]any{"ideaId": idea.ID, "idea": toIdeaDTO(idea)})

	case "getById":
		if req.IdeaID == "" {
			writeFailure(w, http.StatusBadRequest, "Idea ID is required")
			return
		}
		idea, err := h.ideas.GetByID(r.Context(), req.IdeaID)
		if err != nil {
			writeServiceError(w, err, "Idea not found")
			return
		}
		writeSuccess(w, map[string]any{"idea": toIdeaDTO(idea)})

	case "getByCreator":
		ideas, err := h.ideas.GetByCreator(r.Context(), callerID, req.CreatorID)
		if err != nil {
			writeServiceError(w, err, "Idea not found")
			return
		}
		writeSuccess(w, map[string]any{"ideas": toIdeaDTOs(ideas)})

	case "getAll":
		ideas, err := h.ideas.GetAll(r.Context())
		if err != nil {
			writeServiceError(w, err, "Idea not found")
			return
		}
		writeSuccess(w, map[string]any{"ideas": toIdeaDTOs(ideas)})

	case "update":
		if req.IdeaID == "" {
			writeFailure(w, http.StatusBadRequest, "Idea ID is required")
			return
		}
		var patch domain.IdeaPatch
		if req.Updates != nil {
			patch = req.Updates.toPatch()
		}
		if err := h.ideas.Update(r.Context(), callerID, req.IdeaID, patch); err != nil {
			writeServiceError(w, err, "Idea not found")
			return
		}
		writeSuccess(w, nil)

	default:
		writeFailure(w, http.StatusBadRequest, "Invalid operation type")
	}
}
