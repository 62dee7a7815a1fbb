package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dimun/agendalo/internal/scheduling/domain"
)

// CreatePerson registers a person. Emails are unique.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	existing, err := h.people.FindAll(r.Context())
	if err != nil {
		h.serverError(w, r, "create person", err)
		return
	}
	for _, p := range existing {
		if strings.EqualFold(p.Email, req.Email) {
			writeError(w, http.StatusConflict, "A person with this email already exists")
			return
		}
	}

	person := domain.Person{ID: uuid.New(), Name: req.Name, Email: req.Email}
	if err := h.people.Create(r.Context(), person); err != nil {
		h.serverError(w, r, "create person", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPersonResponse(person))
}

// ListPeople returns all people.
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.people.FindAll(r.Context())
	if err != nil {
		h.serverError(w, r, "list people", err)
		return
	}
	out := make([]personResponse, 0, len(people))
	for _, p := range people {
		out = append(out, toPersonResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetPerson returns one person.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "personID")
	if !ok {
		return
	}
	person, err := h.people.FindByID(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "get person", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "Person not found")
		return
	}
	writeJSON(w, http.StatusOK, toPersonResponse(*person))
}

// UpdatePerson replaces a person's name and email.
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "personID")
	if !ok {
		return
	}
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	person := domain.Person{ID: id, Name: req.Name, Email: req.Email}
	if err := h.people.Update(r.Context(), person); err != nil {
		if errors.Is(err, domain.ErrPersonNotFound) {
			writeError(w, http.StatusNotFound, "Person not found")
			return
		}
		h.serverError(w, r, "update person", err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonResponse(person))
}

// DeletePerson removes a person.
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "personID")
	if !ok {
		return
	}
	deleted, err := h.people.Delete(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "delete person", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Person not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateRole registers a role.
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	role := domain.Role{ID: uuid.New(), Name: req.Name, Description: req.Description}
	if err := h.roles.Create(r.Context(), role); err != nil {
		h.serverError(w, r, "create role", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoleResponse(role))
}

// ListRoles returns all roles.
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.FindAll(r.Context())
	if err != nil {
		h.serverError(w, r, "list roles", err)
		return
	}
	out := make([]roleResponse, 0, len(roles))
	for _, role := range roles {
		out = append(out, toRoleResponse(role))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetRole returns one role.
func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathUUID(w, r, "roleID")
	if !ok {
		return
	}
	role, err := h.roles.FindByID(r.Context(), id)
	if err != nil {
		h.serverError(w, r, "get role", err)
		return
	}
	if role == nil {
		writeError(w, http.StatusNotFound, "Role not found")
		return
	}
	writeJSON(w, http.StatusOK, toRoleResponse(*role))
}
