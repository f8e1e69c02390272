package advisor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	modelchat "github.com/rahhal-app/rahhal/backend/internal/model/chat"
	"github.com/rahhal-app/rahhal/backend/internal/model/trip"
	advisorService "github.com/rahhal-app/rahhal/backend/internal/service/advisor"
	chatService "github.com/rahhal-app/rahhal/backend/internal/service/chat"
)

// Handler exposes the advisor endpoints: the persona profile, form-driven
// recommendations and free-form chat.
type Handler struct {
	advisorSvc *advisorService.Service
	chatSvc    *chatService.Service
	window     int
}

// New creates the advisor handler. window is the number of trailing
// transcript messages summarized into follow-up requests.
func New(advisorSvc *advisorService.Service, chatSvc *chatService.Service, window int) *Handler {
	return &Handler{
		advisorSvc: advisorSvc,
		chatSvc:    chatSvc,
		window:     window,
	}
}

// RegisterRoutes registers the advisor routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/advisor", h.handleGetAdvisor)
	r.Post("/recommendations", h.handleRecommendations)
	r.Post("/chat", h.handleChat)
}

// handleGetAdvisor returns the persona profile the advisor speaks as.
func (h *Handler) handleGetAdvisor(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.advisorSvc.Profile())
}

// handleRecommendations turns a submitted preferences form into a
// recommendation request. Only the advisor's reply is added to the
// transcript; the form itself is not a conversation turn.
func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID   string           `json:"sessionId"`
		Preferences trip.Preferences `json:"preferences"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.Preferences.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.chatSvc.GetSession(r.Context(), payload.SessionID); err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "session not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	prompt := advisorService.PreferencesPrompt(h.advisorSvc.Profile(), payload.Preferences)
	reply, ok := h.advisorSvc.GenerateResponse(r.Context(), prompt, "")
	if !ok {
		respondError(w, http.StatusBadGateway, reply)
		return
	}

	stored, err := h.chatSvc.SaveMessage(r.Context(), modelchat.Message{
		SessionID: payload.SessionID,
		Role:      modelchat.RoleAssistant,
		Content:   reply,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, stored)
}

// handleChat appends the user's message to the transcript and asks the
// advisor for a reply. The user message is kept even when generation fails
// so the conversation can be retried.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(payload.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	if _, err := h.chatSvc.SaveMessage(r.Context(), modelchat.Message{
		SessionID: payload.SessionID,
		Role:      modelchat.RoleUser,
		Content:   payload.Message,
	}); err != nil {
		if errors.Is(err, chatService.ErrSessionNotFound) {
			respondError(w, http.StatusNotFound, "session not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	transcript, err := h.chatSvc.LoadTranscript(r.Context(), payload.SessionID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary := modelchat.RenderWindow(transcript, h.window)

	reply, ok := h.advisorSvc.GenerateResponse(r.Context(), payload.Message, summary)
	if !ok {
		respondError(w, http.StatusBadGateway, reply)
		return
	}

	stored, err := h.chatSvc.SaveMessage(r.Context(), modelchat.Message{
		SessionID: payload.SessionID,
		Role:      modelchat.RoleAssistant,
		Content:   reply,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, stored)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
