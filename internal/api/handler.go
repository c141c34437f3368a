package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chethan059/compliment-generator/internal/domain"
	"github.com/chethan059/compliment-generator/internal/engine"
	"github.com/chethan059/compliment-generator/internal/store"
)

// Handler serves the JSON API over the persistence store.
type Handler struct {
	repo store.Repo
	log  *zap.Logger
}

func NewHandler(repo store.Repo, log *zap.Logger) *Handler {
	return &Handler{repo: repo, log: log}
}

type complimentResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"`
	CreatedAt string `json:"createdAt"`
	IsCustom  bool   `json:"isCustom"`
}

type createComplimentRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

type scheduleResponse struct {
	ID            string `json:"id"`
	Time          string `json:"time"`
	TimeDisplay   string `json:"timeDisplay"`
	Days          []int  `json:"days"`
	DaysDisplay   string `json:"daysDisplay"`
	Active        bool   `json:"active"`
	Category      string `json:"complimentCategory,omitempty"`
	LastTriggered string `json:"lastTriggered,omitempty"`
}

type scheduleRequest struct {
	Time     string `json:"time"`
	Days     []int  `json:"days"`
	Active   bool   `json:"active"`
	Category string `json:"complimentCategory"`
}

type randomStateResponse struct {
	Enabled   bool   `json:"enabled"`
	LastFired string `json:"lastFired,omitempty"`
}

type randomStateRequest struct {
	Enabled bool `json:"enabled"`
}

func toComplimentResponse(c domain.Compliment) complimentResponse {
	return complimentResponse{
		ID:        c.ID,
		Text:      c.Text,
		Category:  string(c.Category),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		IsCustom:  c.IsCustom,
	}
}

func toScheduleResponse(s domain.Schedule) scheduleResponse {
	resp := scheduleResponse{
		ID:          s.ID,
		Time:        s.Time,
		TimeDisplay: domain.FormatClock12(s.Time),
		Days:        s.Days,
		DaysDisplay: domain.FormatDays(s.Days),
		Active:      s.Active,
		Category:    string(s.Category),
	}
	if s.LastTriggered != nil {
		resp.LastTriggered = s.LastTriggered.UTC().Format(time.RFC3339)
	}
	return resp
}

// GET /api/compliments?category=
func (h *Handler) listCompliments(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	compliments, err := h.repo.ListCompliments(r.Context(), cat)
	if err != nil {
		h.serverError(w, "list compliments", err)
		return
	}
	out := make([]complimentResponse, 0, len(compliments))
	for _, c := range compliments {
		out = append(out, toComplimentResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/compliments
func (h *Handler) createCompliment(w http.ResponseWriter, r *http.Request) {
	var req createComplimentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	cat, err := domain.ParseCategory(req.Category)
	if err != nil || cat == domain.CategoryAny {
		writeError(w, http.StatusBadRequest, "a valid category is required")
		return
	}

	c := domain.Compliment{
		ID:        uuid.NewString(),
		Text:      req.Text,
		Category:  cat,
		CreatedAt: time.Now().UTC(),
		IsCustom:  true,
	}
	if err := h.repo.SaveCompliment(r.Context(), &c); err != nil {
		h.serverError(w, "save compliment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toComplimentResponse(c))
}

// DELETE /api/compliments/{id} — built-in catalog entries are immutable.
func (h *Handler) deleteCompliment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.repo.GetCompliment(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "compliment not found")
		return
	}
	if err != nil {
		h.serverError(w, "get compliment", err)
		return
	}
	if !c.IsCustom {
		writeError(w, http.StatusUnprocessableEntity, "built-in compliments cannot be deleted")
		return
	}
	if err := h.repo.DeleteCompliment(r.Context(), id); err != nil {
		h.serverError(w, "delete compliment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/compliments/random?category=
func (h *Handler) randomCompliment(w http.ResponseWriter, r *http.Request) {
	cat, err := domain.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	pool, err := h.repo.ListCompliments(r.Context(), domain.CategoryAny)
	if err != nil {
		h.serverError(w, "list compliments", err)
		return
	}
	c := engine.Pick(pool, cat)
	if c == nil {
		writeError(w, http.StatusNotFound, "no compliments available")
		return
	}
	writeJSON(w, http.StatusOK, toComplimentResponse(*c))
}

// GET /api/schedules
func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.repo.ListSchedules(r.Context())
	if err != nil {
		h.serverError(w, "list schedules", err)
		return
	}
	out := make([]scheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, toScheduleResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /api/schedules
func (h *Handler) createSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s := domain.Schedule{
		ID:       uuid.NewString(),
		Time:     req.Time,
		Days:     req.Days,
		Active:   req.Active,
		Category: domain.Category(req.Category),
	}
	if err := s.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.repo.SaveSchedule(r.Context(), &s); err != nil {
		h.serverError(w, "save schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleResponse(s))
}

// PUT /api/schedules/{id}
func (h *Handler) updateSchedule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.repo.GetSchedule(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "schedule not found")
		return
	}
	if err != nil {
		h.serverError(w, "get schedule", err)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s := domain.Schedule{
		ID:       id,
		Time:     req.Time,
		Days:     req.Days,
		Active:   req.Active,
		Category: domain.Category(req.Category),
		// The de-dup marker belongs to the engine, not the client.
		LastTriggered: existing.LastTriggered,
	}
	if err := s.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.repo.SaveSchedule(r.Context(), &s); err != nil {
		h.serverError(w, "save schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleResponse(s))
}

// DELETE /api/schedules/{id}
func (h *Handler) deleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "schedule not found")
			return
		}
		h.serverError(w, "delete schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/settings
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.GetSettings(r.Context())
	if err != nil {
		h.serverError(w, "get settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// PUT /api/settings
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var s domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	s.Normalize()
	if err := h.repo.SaveSettings(r.Context(), s); err != nil {
		h.serverError(w, "save settings", err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GET /api/random
func (h *Handler) getRandomState(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.repo.RandomEnabled(r.Context())
	if err != nil {
		h.serverError(w, "read random toggle", err)
		return
	}
	lastFired, err := h.repo.LastRandomFired(r.Context())
	if err != nil {
		h.serverError(w, "read random marker", err)
		return
	}
	resp := randomStateResponse{Enabled: enabled}
	if !lastFired.IsZero() {
		resp.LastFired = lastFired.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

// PUT /api/random
func (h *Handler) updateRandomState(w http.ResponseWriter, r *http.Request) {
	var req randomStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.repo.SetRandomEnabled(r.Context(), req.Enabled); err != nil {
		h.serverError(w, "set random toggle", err)
		return
	}
	writeJSON(w, http.StatusOK, randomStateRequest{Enabled: req.Enabled})
}

// GET /api/export
func (h *Handler) exportData(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.Export(r.Context())
	if err != nil {
		h.serverError(w, "export", err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// POST /api/import
func (h *Handler) importData(w http.ResponseWriter, r *http.Request) {
	var snap store.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.repo.Import(r.Context(), &snap); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) serverError(w http.ResponseWriter, action string, err error) {
	h.log.Error(action+" failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
