package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dimun/agendalo/internal/scheduling/domain"
)

// CreateAvailability adds an availability rule for a person.
func (h *Handler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	personID, ok := h.pathUUID(w, r, "personID")
	if !ok {
		return
	}

	var req hourRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	base, err := req.toHourRule()
	if err != nil {
		h.ruleError(w, err)
		return
	}

	person, err := h.people.FindByID(r.Context(), personID)
	if err != nil {
		h.serverError(w, r, "create availability rule", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "Person not found")
		return
	}
	role, err := h.roles.FindByID(r.Context(), req.RoleID)
	if err != nil {
		h.serverError(w, r, "create availability rule", err)
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}

	rule := domain.AvailabilityRule{HourRule: base, PersonID: personID, RoleID: req.RoleID}
	if err := h.availability.Create(r.Context(), rule); err != nil {
		h.serverError(w, r, "create availability rule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAvailabilityResponse(rule))
}

// ListAvailabilityByPerson returns a person's availability rules.
func (h *Handler) ListAvailabilityByPerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := h.pathUUID(w, r, "personID")
	if !ok {
		return
	}
	rules, err := h.availability.FindByPerson(r.Context(), personID)
	if err != nil {
		h.serverError(w, r, "list availability rules", err)
		return
	}
	out := make([]availabilityResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toAvailabilityResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteAvailability removes an availability rule.
func (h *Handler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "ruleID")
	if !ok {
		return
	}
	deleted, err := h.availability.Delete(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "delete availability rule", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Availability rule not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateBusinessHours adds a required service-hours rule for a role.
func (h *Handler) CreateBusinessHours(w http.ResponseWriter, r *http.Request) {
	roleID, ok := h.pathUUID(w, r, "roleID")
	if !ok {
		return
	}

	var req hourRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	base, err := req.toHourRule()
	if err != nil {
		h.ruleError(w, err)
		return
	}

	role, err := h.roles.FindByID(r.Context(), roleID)
	if err != nil {
		h.serverError(w, r, "create business rule", err)
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}

	rule := domain.BusinessRule{HourRule: base, RoleID: roleID}
	if err := h.business.Create(r.Context(), rule); err != nil {
		h.serverError(w, r, "create business rule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toBusinessHoursResponse(rule))
}

// ListBusinessHoursByRole returns a role's service-hour rules.
func (h *Handler) ListBusinessHoursByRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := h.pathUUID(w, r, "roleID")
	if !ok {
		return
	}
	rules, err := h.business.FindByRole(r.Context(), roleID)
	if err != nil {
		h.serverError(w, r, "list business rules", err)
		return
	}
	out := make([]businessHoursResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toBusinessHoursResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

// ListBusinessHours returns every service-hour rule.
func (h *Handler) ListBusinessHours(w http.ResponseWriter, r *http.Request) {
	rules, err := h.business.FindAll(r.Context())
	if err != nil {
		h.serverError(w, r, "list business rules", err)
		return
	}
	out := make([]businessHoursResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toBusinessHoursResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteBusinessHours removes a service-hour rule.
func (h *Handler) DeleteBusinessHours(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "ruleID")
	if !ok {
		return
	}
	deleted, err := h.business.Delete(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "delete business rule", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Business rule not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ruleError maps rule validation failures to a 400 with the cause.
func (h *Handler) ruleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTimeRange):
		writeError(w, http.StatusBadRequest, "start_time must be before end_time")
	case errors.Is(err, domain.ErrInvalidWeekday):
		writeError(w, http.StatusBadRequest, "day_of_week must be between 0 (Monday) and 6 (Sunday)")
	default:
		writeError(w, http.StatusBadRequest, "Invalid rule: "+err.Error())
	}
}
