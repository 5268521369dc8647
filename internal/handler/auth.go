package handler

import (
	"net/http"

	"github.com/ideaforge-io/ideaforge/internal/domain"
	"github.com/ideaforge-io/ideaforge/internal/service"
)

// AuthHandler serves the /auth endpoint. Operations are dispatched on the
// request body's "type" field rather than on separate routes.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type authRequest struct {
	Type     string   `json:"type"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Name     string   `json:"name"`
	Bio      string   `json:"bio"`
	UserType string   `json:"userType"`
	Address  string   `json:"address"`
	Skills   []string `json:"skills"`
}

func (h *AuthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	switch req.Type {
	case "signup":
		h.signup(w, r, req)
	case "login":
		h.login(w, r, req)
	case "logout":
		h.logout(w, r)
	case "delete":
		h.delete(w, r)
	default:
		writeFailure(w, http.StatusBadRequest, "Invalid operation type")
	}
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request, req authRequest) {
	user, token, err := h.auth.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Bio:      req.Bio,
		Type:     domain.UserType(req.UserType),
		Address:  req.Address,
		Skills:   req.Skills,
	})
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}
	writeSuccess(w, map[string]any{"user": toUserDTO(user), "token": token})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, req authRequest) {
	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "User not found")
		return
	}
	writeSuccess(w, map[string]any{"user": toUserDTO(user), "token": token})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeFailure(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if err := h.auth.Logout(r.Context(), token); err != nil {
		writeServiceError(w, err, "Session not found")
		return
	}
	writeSuccess(w, nil)
}

func (h *AuthHandler) delete(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeFailure(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if err := h.auth.DeleteAccount(r.Context(), token); err != nil {
		writeServiceError(w, err, "User not found")
		return
	}
	writeSuccess(w, nil)
}
