package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dimun/agendalo/internal/scheduling/application/services"
	"github.com/dimun/agendalo/internal/scheduling/domain"
)

// Handler bundles the HTTP handlers over the application services.
type Handler struct {
	people       domain.PersonRepository
	roles        domain.RoleRepository
	availability domain.AvailabilityRepository
	business     domain.BusinessHoursRepository
	agendas      *services.AgendaService
	calendar     *services.CalendarService
	logger       *slog.Logger
}

// NewHandler creates the handler set.
func NewHandler(
	people domain.PersonRepository,
	roles domain.RoleRepository,
	availability domain.AvailabilityRepository,
	business domain.BusinessHoursRepository,
	agendas *services.AgendaService,
	calendar *services.CalendarService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		people:       people,
		roles:        roles,
		availability: availability,
		business:     business,
		agendas:      agendas,
		calendar:     calendar,
		logger:       logger,
	}
}

const (
	msgInvalidStrategy = "Invalid optimization strategy. Must be one of: " +
		"maximize_coverage, minimize_gaps, balance_workload"
	msgRoleOrDataMissing = "Role not found or no availability/business service hours available"
)

// GenerateAgenda runs one full draft generation.
func (h *Handler) GenerateAgenda(w http.ResponseWriter, r *http.Request) {
	var req generateAgendaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RoleID == uuid.Nil || len(req.Weeks) == 0 || req.Year == 0 {
		writeError(w, http.StatusBadRequest, "role_id, weeks and year are required")
		return
	}

	strategy := domain.Strategy(req.OptimizationStrategy)
	if !strategy.Valid() {
		writeError(w, http.StatusBadRequest, msgInvalidStrategy)
		return
	}

	details, err := h.agendas.GenerateDraft(r.Context(), req.RoleID, req.Weeks, req.Year, strategy)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) || errors.Is(err, domain.ErrNoScheduleData) {
			writeError(w, http.StatusNotFound, msgRoleOrDataMissing)
			return
		}
		h.serverError(w, r, "generate agenda", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAgendaResponse(details))
}

// GetAgenda returns one agenda with entries and coverage.
func (h *Handler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "agendaID")
	if !ok {
		return
	}

	details, err := h.agendas.GetAgenda(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAgendaNotFound) {
			writeError(w, http.StatusNotFound, "Agenda not found")
			return
		}
		h.serverError(w, r, "get agenda", err)
		return
	}
	writeJSON(w, http.StatusOK, toAgendaResponse(details))
}

// ListAgendas lists a role's agendas, optionally filtered by status.
func (h *Handler) ListAgendas(w http.ResponseWriter, r *http.Request) {
	roleID, err := uuid.Parse(r.URL.Query().Get("role_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "role_id query parameter is required")
		return
	}
	status := domain.AgendaStatus(strings.TrimSpace(r.URL.Query().Get("status")))

	details, err := h.agendas.ListAgendas(r.Context(), roleID, status)
	if err != nil {
		h.serverError(w, r, "list agendas", err)
		return
	}

	out := make([]agendaResponse, 0, len(details))
	for i := range details {
		out = append(out, toAgendaResponse(&details[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// pathUUID parses a UUID path segment, writing a 400 on failure.
func (h *Handler) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.ErrorContext(r.Context(), op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
