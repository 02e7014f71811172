package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Shravan-Padale771/QuickBackend/internal/model"
	"github.com/Shravan-Padale771/QuickBackend/internal/service"
)

// RelayService abstracts the send/receive operations for handlers.
type RelayService interface {
	Send(ctx context.Context, in service.SendInput) (service.Created, error)
	Receive(ctx context.Context, code string) (*model.Message, error)
}

// RelayHandler provides the public send/receive endpoints.
type RelayHandler struct {
	svc RelayService
}

// NewRelayHandler builds a RelayHandler.
func NewRelayHandler(svc RelayService) *RelayHandler {
	return &RelayHandler{svc: svc}
}

type sendRequest struct {
	Topic   string `json:"topic"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

type receiveRequest struct {
	Code string `json:"code"`
}

type receiveResponse struct {
	Topic     string    `json:"topic"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Send handles POST /send.
func (h *RelayHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	created, err := h.svc.Send(r.Context(), service.SendInput{
		Topic:   req.Topic,
		Author:  req.Author,
		Message: req.Message,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Receive handles POST /receive. The code is the only identifier a caller
// holds; internal ids stay out of the response.
func (h *RelayHandler) Receive(w http.ResponseWriter, r *http.Request) {
	var req receiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	msg, err := h.svc.Receive(r.Context(), strings.TrimSpace(req.Code))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, receiveResponse{
		Topic:     msg.Topic,
		Author:    msg.Author,
		Message:   msg.Content,
		CreatedAt: msg.CreatedAt,
		ExpiresAt: msg.ExpiresAt,
	})
}
