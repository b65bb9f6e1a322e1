// File: internal/handlers/chat_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/iitigpt/go-campusgpt/internal/middleware"
	"github.com/iitigpt/go-campusgpt/internal/repository/chat"
	"github.com/iitigpt/go-campusgpt/internal/services"
)

type ChatHandler struct {
	ChatService *services.ChatService
}

func NewChatHandler(cs *services.ChatService) *ChatHandler {
	return &ChatHandler{ChatService: cs}
}

// userIDFromContext pulls the authenticated user id placed there by the
// auth middleware.
func userIDFromContext(r *http.Request) (uint, bool) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	return userID, ok
}

// chatIDFromPath parses the {id} path variable.
func chatIDFromPath(r *http.Request) (uint, error) {
	chatID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(chatID), nil
}

// GetUserChats returns the caller's chat summaries, most recently updated
// first.
func (h *ChatHandler) GetUserChats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chats, err := h.ChatService.ListChats(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve chats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, chats)
}

// GetChat returns one chat with its full transcript. Chats owned by other
// users are reported as not found.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	result, err := h.ChatService.GetChat(r.Context(), userID, chatID)
	if err != nil {
		if errors.Is(err, chat.ErrChatNotFound) {
			writeError(w, "Chat not found", http.StatusNotFound)
			return
		}
		writeError(w, "Could not retrieve chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// CreateChat starts a new chat from the caller's first message.
func (h *ChatHandler) CreateChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.ChatService.CreateChat(r.Context(), userID, req.Title, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrEmptyContent) {
			writeError(w, "Message is required", http.StatusBadRequest)
			return
		}
		writeError(w, "Could not create chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// AppendMessage records one turn verbatim, for either role. It never calls
// the assistant; clients use the ask endpoint for that.
func (h *ChatHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.ChatService.AppendMessage(r.Context(), userID, chatID, req.Role, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrChatNotFound):
			writeError(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidRole):
			writeError(w, "Role must be user or assistant", http.StatusBadRequest)
		case errors.Is(err, services.ErrEmptyContent):
			writeError(w, "Content is required", http.StatusBadRequest)
		default:
			writeError(w, "Could not append message", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Ask runs the full question flow: it persists the user's question, asks
// the assistant with the chat history, and persists the reply.
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.ChatService.SendMessage(r.Context(), userID, chatID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrChatNotFound):
			writeError(w, "Chat not found", http.StatusNotFound)
		case errors.Is(err, services.ErrEmptyContent):
			writeError(w, "Message is required", http.StatusBadRequest)
		default:
			writeError(w, "Could not process message", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteChat removes the chat and its messages. Deleting an absent chat
// still succeeds.
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	chatID, err := chatIDFromPath(r)
	if err != nil {
		writeError(w, "Invalid chat ID", http.StatusBadRequest)
		return
	}

	if err := h.ChatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		writeError(w, "Could not delete chat", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Chat deleted"})
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
