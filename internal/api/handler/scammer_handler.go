package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"scamdb/internal/app/service"
	"scamdb/internal/common"

	"github.com/go-chi/chi/v5"
)

type ScammerHandler struct {
	scammerService *service.ScammerService
}

func NewScammerHandler(scammerService *service.ScammerService) *ScammerHandler {
	return &ScammerHandler{scammerService: scammerService}
}

func (h *ScammerHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Get("/public", h.listScammers) // GET /api/scammers/public

	r.Group(func(protected chi.Router) {
		protected.Use(authenticate)
		protected.Get("/", h.listScammers)
		protected.Post("/", h.createScammer)
		protected.Get("/{scammerID}", h.getScammer)
		protected.Put("/{scammerID}", h.updateScammer)
		protected.Delete("/{scammerID}", h.deleteScammer)
	})
}

// listScammers serves both the public and the authenticated listing; the two
// differ only in the gate, not in behavior.
func (h *ScammerHandler) listScammers(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	search := r.URL.Query().Get("search")

	scammers, err := h.scammerService.List(r.Context(), skip, limit, search)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, scammers)
}

func (h *ScammerHandler) createScammer(w http.ResponseWriter, r *http.Request) {
	var req service.CreateScammerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	scammer, err := h.scammerService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, scammer)
}

func (h *ScammerHandler) getScammer(w http.ResponseWriter, r *http.Request) {
	scammerID := chi.URLParam(r, "scammerID")

	scammer, err := h.scammerService.Get(r.Context(), scammerID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, scammer)
}

func (h *ScammerHandler) updateScammer(w http.ResponseWriter, r *http.Request) {
	scammerID := chi.URLParam(r, "scammerID")

	var req service.UpdateScammerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	scammer, err := h.scammerService.Update(r.Context(), scammerID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, scammer)
}

func (h *ScammerHandler) deleteScammer(w http.ResponseWriter, r *http.Request) {
	scammerID := chi.URLParam(r, "scammerID")

	if err := h.scammerService.Delete(r.Context(), scammerID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Scammer record deleted"})
}

// GetStatistics is registered at the API root, not under /scammers.
func (h *ScammerHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scammerService.Statistics(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}
