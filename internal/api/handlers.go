package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"kanboard/internal/application/dto"
	"kanboard/internal/application/usecase"
	"kanboard/internal/domain/entity"
)

const maxBodyBytes = 64 << 10

type handlers struct {
	service usecase.BoardService
	logger  *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handlers) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.GetBoard(r.Context())
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *handlers) exportBoard(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "board"
	}

	doc, err := h.service.ExportBoard(r.Context(), name)
	if err != nil {
		h.internalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// addCard answers 201 when a card was created and 200 with added=false
// when the title was blank
func (h *handlers) addCard(w http.ResponseWriter, r *http.Request) {
	var req dto.AddCardRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.AddCard(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if resp.Added {
		status = http.StatusCreated
	}
	writeJSON(w, status, resp)
}

func (h *handlers) applyDrop(w http.ResponseWriter, r *http.Request) {
	var req dto.DropRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp, err := h.service.ApplyDrop(r.Context(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) deleteCard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.DeleteCard(r.Context(), chi.URLParam(r, "cardID"))
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrEmptyCardID):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, entity.ErrAmbiguousCardID):
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		default:
			h.internalError(w, err)
		}
		return
	}
	if !resp.Removed {
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handlers) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func decodeJSON(r *http.Request, target interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
