package handler

import (
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

// ProfileHandler serves the /api/profiles endpoint.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type profileRequest struct {
	Operation string             `json:"operation"`
	UserID    string             `json:"userId"`
	Updates   *profileUpdateBody `json:"updates"`
}

type profileUpdateBody struct {
	Name       *string   `json:"name"`
	Bio        *string   `json:"bio"`
	UserType   *string   `json:"userType"`
	Address    *string   `json:"address"`
	Skills     *[]string `json:"skills"`
	Reputation *int      `json:"reputation"`
}

func (b *profileUpdateBody) toPatch() domain.UserPatch {
	patch := domain.UserPatch{
		Name:       b.Name,
		Bio:        b.Bio,
		Address:    b.Address,
		Skills:     b.Skills,
		Reputation: b.Reputation,
	}
	if b.UserType != nil {
		userType := domain.UserType(*b.UserType)
		patch.Type = &userType
	}
	return patch
}

func (h *ProfileHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	callerID := UserIDFromContext(r.Context())

	switch req.Operation {
	case "getById":
		if req.UserID == "" {
			writeFailure(w, http.StatusBadRequest, "User ID is required")
			return
		}
		user, err := h.profiles.GetByID(r.Context(), req.UserID)
		if err != nil {
			writeServiceError(w, err, "User not found")
			return
		}
		writeSuccess(w, map[string]any{"user": toUserDTO(user)})

	case "update":
		var patch domain.UserPatch
		if req.Updates != nil {
			patch = req.Updates.toPatch()
		}
		if err := h.profiles.Update(r.Context(), callerID, patch); err != nil {
			writeServiceError(w, err, "User not found")
			return
		}
		writeSuccess(w, nil)

	case "getStats":
		stats, err := h.profiles.Stats(r.Context(), callerID)
		if err != nil {
			writeServiceError(w, err, "User not found")
			return
		}
		writeSuccess(w, map[string]any{"stats": map[string]any{
			"ideas":     stats.Ideas,
			"projects":  stats.Projects,
			"funding":   stats.Funding,
			"royalties": stats.Royalties,
		}})

	default:
		writeFailure(w, http.StatusBadRequest, "Invalid operation type")
	}
}
