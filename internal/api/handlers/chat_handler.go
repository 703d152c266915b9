package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"asir-guide-api/internal/i18n"
	"asir-guide-api/internal/models"
	apierrors "asir-guide-api/internal/pkg/errors"
	"asir-guide-api/internal/services"

	"github.com/gorilla/mux"
)

// ChatHandler exposes the conversation over HTTP: one session per widget,
// messages in, the turn's bot replies out.
type ChatHandler struct {
	sessions *services.SessionManager
	chat     services.ChatService
}

func NewChatHandler(sessions *services.SessionManager, chat services.ChatService) *ChatHandler {
	return &ChatHandler{sessions: sessions, chat: chat}
}

type languageOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type sessionResponse struct {
	SessionID string                   `json:"session_id"`
	Language  string                   `json:"language"`
	Languages []languageOption         `json:"languages,omitempty"`
	Messages  []models.TranscriptEntry `json:"messages"`
}

type languageRequest struct {
	Language string `json:"language"`
}

type messageRequest struct {
	Text string `json:"text"`
}

// CreateSession opens a conversation and returns the greeting plus the
// language options the widget renders as buttons.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()
	h.chat.Greet(session)
	session.Renderer.Wait()

	options := make([]languageOption, 0, len(i18n.Languages()))
	for _, lang := range i18n.Languages() {
		options = append(options, languageOption{Code: lang.String(), Label: lang.Label()})
	}

	respondWithJSON(w, http.StatusCreated, sessionResponse{
		SessionID: session.ID,
		Language:  session.Language.String(),
		Languages: options,
		Messages:  session.Renderer.Drain(),
	})
}

// SetLanguage pins the session language to one of the closed set.
func (h *ChatHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req languageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lang, ok := i18n.ParseLanguage(req.Language)
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Unsupported language")
		return
	}

	h.chat.SetLanguage(session, lang)
	session.Renderer.Wait()

	respondWithJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		Language:  session.Language.String(),
		Messages:  session.Renderer.Drain(),
	})
}

// PostMessage dispatches one visitor message and returns the bot replies
// rendered for this turn.
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondWithError(w, http.StatusBadRequest, "Message text is required")
		return
	}

	if err := h.chat.HandleMessage(r.Context(), session, req.Text); err != nil {
		if apierrors.Is(err, apierrors.ErrInvalidInput) {
			respondWithError(w, http.StatusConflict, "Select a language first")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Error handling message")
		return
	}
	session.Renderer.Wait()

	respondWithJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		Language:  session.Language.String(),
		Messages:  session.Renderer.Drain(),
	})
}

// GetTranscript returns the full conversation so far.
func (h *ChatHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	session, ok := h.sessions.Get(mux.Vars(r)["id"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Session not found")
		return
	}

	respondWithJSON(w, http.StatusOK, sessionResponse{
		SessionID: session.ID,
		Language:  session.Language.String(),
		Messages:  session.Renderer.Transcript(),
	})
}
