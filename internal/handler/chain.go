package handler

import (
	"net/http"
	"time"

	"github.com/ideaforge-io/ideaforge/internal/chain"
)

// ChainHandler serves the /chain endpoints backed by the payment-stream
// service.
type ChainHandler struct {
	chain *chain.Client
}

func NewChainHandler(client *chain.Client) *ChainHandler {
	return &ChainHandler{chain: client}
}

func (h *ChainHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := h.chain.CheckHealth(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "chain-health",
		"chain":     health,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *ChainHandler) Config(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]any{
		"config":    h.chain.GetConfig(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type streamRequest struct {
	Recipient    string `json:"recipient"`
	Amount       string `json:"amount"`
	Duration     int64  `json:"duration"`
	TokenAddress string `json:"tokenAddress"`
}

func (h *ChainHandler) CreateStream(w http.ResponseWriter, r *http.Request) {
	var req streamRequest
	if err := readJSON(r, &req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Recipient == "" || req.Amount == "" || req.Duration == 0 {
		writeFailure(w, http.StatusBadRequest, "Missing required fields: recipient, amount, duration")
		return
	}

	result, err := h.chain.CreateStream(r.Context(), req.Recipient, req.Amount, req.Duration, req.TokenAddress)
	if err != nil {
		writeServiceError(w, err, "Stream not found")
		return
	}
	writeSuccess(w, map[string]any{"stream": result})
}
