package api

import (
	"net/http"
	"strconv"
	"time"
)

// CalendarWeek returns the availability instances for a nominal week.
func (h *Handler) CalendarWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < 1 || week > 53 {
		writeError(w, http.StatusBadRequest, "week must be an integer between 1 and 53")
		return
	}
	year, ok := h.queryYear(w, r)
	if !ok {
		return
	}

	entries, err := h.calendar.Week(r.Context(), week, year)
	if err != nil {
		h.serverError(w, r, "calendar week", err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarResponse(entries))
}

// CalendarMonth returns the availability instances for a calendar month.
func (h *Handler) CalendarMonth(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be an integer between 1 and 12")
		return
	}
	year, ok := h.queryYear(w, r)
	if !ok {
		return
	}

	entries, err := h.calendar.Month(r.Context(), time.Month(month), year)
	if err != nil {
		h.serverError(w, r, "calendar month", err)
		return
	}
	writeJSON(w, http.StatusOK, toCalendarResponse(entries))
}

func (h *Handler) queryYear(w http.ResponseWriter, r *http.Request) (int, bool) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "year must be a positive integer")
		return 0, false
	}
	return year, true
}
