package handler

import (
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

// FundingHandler serves the /api/funding endpoint.
type FundingHandler struct {
	funding *service.FundingService
}

func NewFundingHandler(funding *service.FundingService) *FundingHandler {
	return &FundingHandler{funding: funding}
}

type fundingRequest struct {
	Operation        string             `json:"operation"`
	FundingID        string             `json:"fundingId"`
	ProjectID        string             `json:"projectId"`
	Amount           float64            `json:"amount"`
	EquityPercentage float64            `json:"equityPercentage"`
	Terms            string             `json:"terms"`
	Updates          *fundingUpdateBody `json:"updates"`
}

type fundingUpdateBody struct {
	Amount           *float64 `json:"amount"`
	EquityPercentage *float64 `json:"equityPercentage"`
	Terms            *string  `json:"terms"`
	Status           *string  `json:"status"`
}

func (b *fundingUpdateBody) toPatch() domain.FundingPatch {
	patch := domain.FundingPatch{
		Amount:           b.Amount,
		EquityPercentage: b.EquityPercentage,
		Terms:            b.Terms,
	}
	if b.Status != nil {
		status := domain.FundingStatus(*b.Status)
		patch.Status = &status
	}
	return patch
}

func (h *FundingHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req fundingRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	callerID := UserIDFromContext(r.Context())

	switch req.Operation {
	case "create":
		funding, err := h.funding.Create(r.Context(), callerID, service.CreateFundingInput{
			ProjectID:        req.ProjectID,
			Amount:           req.Amount,
			EquityPercentage: req.EquityPercentage,
			Terms:            req.Terms,
		})
		if err != nil {
			writeServiceError(w, err, "Funding not found")
			return
		}
		writeSuccess(w, map[string]any{"fundingId": funding.ID, "funding": toFundingDTO(funding)})

	case "getByProject":
		fundings, err := h.funding.GetByProject(r.Context(), req.ProjectID)
		if err != nil {
			writeServiceError(w, err, "Funding not found")
			return
		}
		writeSuccess(w, map[string]any{"fundings": toFundingDTOs(fundings)})

	case "update":
		if req.FundingID == "" {
			writeFailure(w, http.StatusBadRequest, "Funding ID is required")
			return
		}
		var patch domain.FundingPatch
		if req.Updates != nil {
			patch = req.Updates.toPatch()
		}
		if err := h.funding.Update(r.Context(), callerID, req.FundingID, patch); err != nil {
			writeServiceError(w, err, "Funding not found")
			return
		}
		writeSuccess(w, nil)

	default:
		writeFailure(w, http.StatusBadRequest, "Invalid operation type")
	}
}
