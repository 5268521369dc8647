package handler

import (
	"net/http"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

// ProjectHandler serves the /api/projects endpoint.
type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type milestoneBody struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	FundingAmount float64 `json:"fundingAmount"`
	Status        string  `json:"status"`
	DueDate       string  `json:"dueDate"`
	CompletedDate *string `json:"completedDate"`
}

func toMilestones(bodies []milestoneBody) []domain.Milestone {
	milestones := make([]domain.Milestone, len(bodies))
	for i, b := range bodies {
		milestones[i] = domain.Milestone{
			ID:            b.ID,
			Title:         b.Title,
			Description:   b.Description,
			FundingAmount: b.FundingAmount,
			Status:        domain.MilestoneStatus(b.Status),
			DueDate:       parseTime(b.DueDate),
		}
		if milestones[i].Status == "" {
			milestones[i].Status = domain.MilestoneStatusPending
		}
		if b.CompletedDate != nil {
			t := parseTime(*b.CompletedDate)
			milestones[i].CompletedDate = &t
		}
	}
	return milestones
}

// parseTime accepts RFC 3339 timestamps and treats anything else,
// including the empty string, as the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type projectRequest struct {
	Operation           string             `json:"operation"`
	ProjectID           string             `json:"projectId"`
	ExecutorID          string             `json:"executorId"`
	IdeaID              string             `json:"ideaId"`
	Title               string             `json:"title"`
	Description         string             `json:"description"`
	Milestones          []milestoneBody    `json:"milestones"`
	TotalFunding        float64            `json:"totalFunding"`
	StartDate           string             `json:"startDate"`
	EstimatedCompletion string             `json:"estimatedCompletion"`
	Updates             *projectUpdateBody `json:"updates"`
}

type projectUpdateBody struct {
	Title               *string          `json:"title"`
	Description         *string          `json:"description"`
	Milestones          *[]milestoneBody `json:"milestones"`
	TotalFunding        *float64         `json:"totalFunding"`
	CurrentFunding      *float64         `json:"currentFunding"`
	Status              *string          `json:"status"`
	EstimatedCompletion *string          `json:"estimatedCompletion"`
	ActualCompletion    *string          `json:"actualCompletion"`
}

func (b *projectUpdateBody) toPatch() domain.ProjectPatch {
	patch := domain.ProjectPatch{
		Title:          b.Title,
		Description:    b.Description,
		TotalFunding:   b.TotalFunding,
		CurrentFunding: b.CurrentFunding,
	}
	if b.Milestones != nil {
		milestones := toMilestones(*b.Milestones)
		patch.Milestones = &milestones
	}
	if b.Status != nil {
		status := domain.ProjectStatus(*b.Status)
		patch.Status = &status
	}
	if b.EstimatedCompletion != nil {
		t := parseTime(*b.EstimatedCompletion)
		patch.EstimatedCompletion = &t
	}
	if b.ActualCompletion != nil {
		t := parseTime(*b.ActualCompletion)
		patch.ActualCompletion = &t
	}
	return patch
}

func (h *ProjectHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	callerID := UserIDFromContext(r.Context())

	switch req.Operation {
	case "create":
		project, err := h.projects.Create(r.Context(), callerID, service.CreateProjectInput{
			IdeaID:              req.IdeaID,
			Title:               req.Title,
			Description:         req.Description,
			Milestones:          toMilestones(req.Milestones),
			TotalFunding:        req.TotalFunding,
			StartDate:           parseTime(req.StartDate),
			EstimatedCompletion: parseTime(req.EstimatedCompletion),
		})
		if err != nil {
			writeServiceError(w, err, "Project not found")
			return
		}
		writeSuccess(w, map[string]any{"projectId": project.ID, "project": toProjectDTO(project)})

	case "getById":
		if req.ProjectID == "" {
			writeFailure(w, http.StatusBadRequest, "Project ID is required")
			return
		}
		project, err := h.projects.GetByID(r.Context(), req.ProjectID)
		if err != nil {
			writeServiceError(w, err, "Project not found")
			return
		}
		writeSuccess(w, map[string]any{"project": toProjectDTO(project)})

	case "getByExecutor":
		projects, err := h.projects.GetByExecutor(r.Context(), callerID, req.ExecutorID)
		if err != nil {
			writeServiceError(w, err, "Project not found")
			return
		}
		writeSuccess(w, map[string]any{"projects": toProjectDTOs(projects)})

	case "getAll":
		projects, err := h.projects.GetAll(r.Context())
		if err != nil {
			writeServiceError(w, err, "Project not found")
			return
		}
		writeSuccess(w, map[string]any{"projects": toProjectDTOs(projects)})

	case "update":
		if req.ProjectID == "" {
			writeFailure(w, http.StatusBadRequest, "Project ID is required")
			return
		}
		var patch domain.ProjectPatch
		if req.Updates != nil {
			patch = req.Updates.toPatch()
		}
		if err := h.projects.Update(r.Context(), callerID, req.ProjectID, patch); err != nil {
			writeServiceError(w, err, "Project not found")
			return
		}
		writeSuccess(w, nil)

	default:
		writeFailure(w, http.StatusBadRequest, "Invalid operation type")
	}
}
