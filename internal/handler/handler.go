package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/honeynil/PlayerServiceTochka/internal/filter"
	service "github.com/honeynil/PlayerServiceTochka/internal/services"
	pkgerrors "github.com/honeynil/PlayerServiceTochka/pkg/errors"
)

type Handler struct {
	service service.PlayerService
}

func NewHandler(s service.PlayerService) *Handler {
	return &Handler{service: s}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidID), errors.Is(err, pkgerrors.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, pkgerrors.ErrPlayerNotFound):
		status = http.StatusNotFound
	default:
		slog.Error("request failed", "error", err)
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// RegisterRoutes mounts the player resource. The count route has to be
// registered ahead of the {id} routes.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/rest/players", h.ListPlayers).Methods(http.MethodGet)
	r.HandleFunc("/rest/players/count", h.CountPlayers).Methods(http.MethodGet)
	r.HandleFunc("/rest/players", h.CreatePlayer).Methods(http.MethodPost)
	r.HandleFunc("/rest/players/", h.CreatePlayer).Methods(http.MethodPost)
	r.HandleFunc("/rest/players/{id}", h.GetPlayer).Methods(http.MethodGet)
	r.HandleFunc("/rest/players/{id}", h.UpdatePlayer).Methods(http.MethodPost)
	r.HandleFunc("/rest/players/{id}", h.DeletePlayer).Methods(http.MethodDelete)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	players, err := h.service.List(r.Context(), filter.Build(q.params), q.order, q.pageNumber, q.pageSize)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponses(players))
}

func (h *Handler) CountPlayers(w http.ResponseWriter, r *http.Request) {
	params, err := parseFilter(r.URL.Query())
	if err != nil {
		h.writeError(w, err)
		return
	}

	count, err := h.service.Count(r.Context(), filter.Build(params))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, count)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(player))
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidInput, err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.writeError(w, err)
		return
	}

	player, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(player))
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	// Идентификатор проверяется раньше тела запроса
	if _, err := service.ParseID(id); err != nil {
		h.writeError(w, err)
		return
	}

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidInput, err))
		return
	}
	input, err := req.toInput()
	if err != nil {
		h.writeError(w, err)
		return
	}

	player, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toResponse(player))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
