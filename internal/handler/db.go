package handler

import (
	"errors"
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

// DBHandler serves the /db endpoint: low-level user lookups, data-record
// operations, storage counters, and a manual session sweep.
type DBHandler struct {
	profiles *service.ProfileService
	data     *service.DataService
	users    domain.UserRepository
	sessions domain.SessionRepository
	stats    domain.StatsRepository
}

func NewDBHandler(profiles *service.ProfileService, data *service.DataService, users domain.UserRepository, sessions domain.SessionRepository, stats domain.StatsRepository) *DBHandler {
	return &DBHandler{profiles: profiles, data: data, users: users, sessions: sessions, stats: stats}
}

type dbRequest struct {
	Type     string        `json:"type"`
	UserID   string        `json:"userId"`
	Email    string        `json:"email"`
	RecordID string        `json:"recordId"`
	Key      string        `json:"key"`
	Value    any           `json:"value"`
	Updates  *dbUpdateBody `json:"updates"`
}

type dbUpdateBody struct {
	Key   *string `json:"key"`
	Value *any    `json:"value"`

	// User profile fields, honored by the updateUser operation only.
	Name       *string   `json:"name"`
	Bio        *string   `json:"bio"`
	UserType   *string   `json:"userType"`
	Address    *string   `json:"address"`
	Skills     *[]string `json:"skills"`
	Reputation *int      `json:"reputation"`
}

func (b *dbUpdateBody) toUserPatch() domain.UserPatch {
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

func (h *DBHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req dbRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	callerID := UserIDFromContext(r.Context())

	switch req.Type {
	case "getUserById":
		if req.UserID == "" {
			writeFailure(w, http.StatusBadRequest, "userId is required")
			return
		}
		user, err := h.users.GetByID(r.Context(), req.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			writeSuccess(w, map[string]any{"user": nil})
			return
		}
		if err != nil {
			writeServiceError(w, err, "User not found")
			return
		}
		writeSuccess(w, map[string]any{"user": toUserDTO(user)})

	case "getUserByEmail":
		if req.Email == "" {
			writeFailure(w, http.StatusBadRequest, "email is required")
			return
		}
		user, err := h.users.GetByEmail(r.Context(), req.Email)
		if errors.Is(err, domain.ErrNotFound) {
			writeSuccess(w, map[string]any{"user": nil})
			return
		}
		if err != nil {
			writeServiceError(w, err, "User not found")
			return
		}
		writeSuccess(w, map[string]any{"user": toUserDTO(user)})

	case "updateUser":
		if callerID == "" {
			writeFailure(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if req.Updates == nil {
			writeFailure(w, http.StatusBadRequest, "updates are required")
			return
		}
		if err := h.profiles.Update(r.Context(), callerID, req.Updates.toUserPatch()); err != nil {
			writeServiceError(w, err, "User not found")
			return
		}
		writeSuccess(w, nil)

	case "createDataRecord":
		record, err := h.data.Create(r.Context(), callerID, req.Key, req.Value)
		if err != nil {
			writeServiceError(w, err, "Record not found")
			return
		}
		writeSuccess(w, map[string]any{"recordId": record.ID, "record": toDataRecordDTO(record)})

	case "getDataRecord":
		if req.RecordID == "" {
			writeFailure(w, http.StatusBadRequest, "recordId is required")
			return
		}
		record, err := h.data.Get(r.Context(), callerID, req.RecordID)
		if err != nil {
			writeServiceError(w, err, "Record not found")
			return
		}
		writeSuccess(w, map[string]any{"record": toDataRecordDTO(record)})

	case "getDataRecordsByUser":
		records, err := h.data.GetByUser(r.Context(), callerID)
		if err != nil {
			writeServiceError(w, err, "Record not found")
			return
		}
		writeSuccess(w, map[string]any{"records": toDataRecordDTOs(records)})

	case "updateDataRecord":
		if req.RecordID == "" || req.Updates == nil {
			writeFailure(w, http.StatusBadRequest, "recordId and updates are required")
			return
		}
		patch := domain.DataRecordPatch{Key: req.Updates.Key, Value: req.Updates.Value}
		if err := h.data.Update(r.Context(), callerID, req.RecordID, patch); err != nil {
			writeServiceError(w, err, "Record not found")
			return
		}
		writeSuccess(w, nil)

	case "deleteDataRecord":
		if req.RecordID == "" {
			writeFailure(w, http.StatusBadRequest, "recordId is required")
			return
		}
		if err := h.data.Delete(r.Context(), callerID, req.RecordID); err != nil {
			writeServiceError(w, err, "Record not found")
			return
		}
		writeSuccess(w, nil)

	case "getDBStats":
		stats, err := h.stats.Stats(r.Context())
		if err != nil {
			writeServiceError(w, err, "Stats unavailable")
			return
		}
		writeSuccess(w, map[string]any{"stats": map[string]any{
			"users":       stats.Users,
			"sessions":    stats.Sessions,
			"dataRecords": stats.DataRecords,
		}})

	case "cleanupExpiredSessions":
		if _, err := h.sessions.SweepExpired(r.Context()); err != nil {
			writeServiceError(w, err, "Sessions unavailable")
			return
		}
		writeSuccess(w, map[string]any{"message": "Expired sessions cleaned up"})

	default:
		writeFailure(w, http.StatusBadRequest, "Invalid operation type")
	}
}
