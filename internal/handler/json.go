package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (h *Handler) logInternalServerError(r *http.Request, err error) {
	slog.Error("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)
}

func (h *Handler) readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logInternalServerError(r, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, msg string) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: false,
		Message: msg,
		Data:    nil,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		h.errorResponse(w, r, err.Error())
		return
	}

	h.errorResponse(w, r, validationErrors[0].Translate(h.translator))
}

func (h *Handler) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	h.logInternalServerError(r, err)
	h.writeJSON(w, r, http.StatusInternalServerError, Response{
		Success: false,
		Message: "internal server error",
		Data:    nil,
	})
}

func (h *Handler) successResponse(w http.ResponseWriter, r *http.Request, msg string, data any) {
	h.writeJSON(w, r, http.StatusOK, Response{
		Success: true,
		Message: msg,
		Data:    data,
	})
}

// domainError maps the domain error taxonomy onto the response envelope so
// every failure carries a stable message; anything unmapped is a server error.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	var ve domain.ValidationErrors
	if errors.As(err, &ve) {
		h.writeJSON(w, r, http.StatusOK, Response{
			Success: false,
			Message: "validation failed",
			Data:    ve,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		h.errorResponse(w, r, "record not found")
	case errors.Is(err, domain.ErrUnknownRole):
		h.errorResponse(w, r, "unknown role code")
	case errors.Is(err, domain.ErrUnauthorized):
		h.errorResponse(w, r, "you are not allowed to perform this action")
	case errors.Is(err, domain.ErrInvalidState):
		h.errorResponse(w, r, "operation not allowed in the current state")
	case errors.Is(err, domain.ErrInvalidTransition):
		h.errorResponse(w, r, "timesheet cannot move from its current status")
	case errors.Is(err, domain.ErrNoActiveEntry):
		h.errorResponse(w, r, "no open time entry to close")
	case errors.Is(err, domain.ErrNoRecordedWork):
		h.errorResponse(w, r, "timesheet needs at least one closed time entry before submission")
	default:
		h.internalServerError(w, r, err)
	}
}
