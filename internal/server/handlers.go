package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	openinghours "github.com/Xevion/go-openinghours"
	"github.com/Xevion/go-openinghours/internal"
)

type contextKey string

const (
	venueNameKey  contextKey = "venue"
	venueHoursKey contextKey = "hours"
)

type venueResponse struct {
	Name string `json:"name"`
	Open bool   `json:"open"`
}

type statusResponse struct {
	Venue     string     `json:"venue"`
	At        time.Time  `json:"at"`
	Open      bool       `json:"open"`
	NextOpen  *time.Time `json:"next_open,omitempty"`
	NextClose *time.Time `json:"next_close,omitempty"`
}

type dayResponse struct {
	Day   string   `json:"day,omitempty"`
	Date  string   `json:"date,omitempty"`
	Open  bool     `json:"open"`
	Hours []string `json:"hours"`
	Data  any      `json:"data,omitempty"`
}

type groupResponse struct {
	Days  []string `json:"days"`
	Hours []string `json:"hours"`
}

type weekResponse struct {
	Venue   string          `json:"venue"`
	Days    []dayResponse   `json:"days"`
	Regular []groupResponse `json:"regular"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// venueCtx resolves the {venue} URL parameter.
func (s *Server) venueCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "venue")
		hours, ok := s.venues[name]
		if !ok {
			writeError(w, http.StatusNotFound, errors.New("unknown venue "+name))
			return
		}
		ctx := context.WithValue(r.Context(), venueNameKey, name)
		ctx = context.WithValue(ctx, venueHoursKey, hours)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func venueFrom(r *http.Request) (string, *openinghours.OpeningHours) {
	name, _ := r.Context().Value(venueNameKey).(string)
	hours, _ := r.Context().Value(venueHoursKey).(*openinghours.OpeningHours)
	return name, hours
}

// instant reads the optional RFC 3339 "at" query parameter.
func (s *Server) instant(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("at")
	if raw == "" {
		return s.now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (s *Server) setOpen(venue string, open bool) {
	value := 0.0
	if open {
		value = 1
	}
	s.open.WithLabelValues(venue).Set(value)
}

func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	s.queries.WithLabelValues("venues").Inc()

	now := s.now()
	venues := make([]venueResponse, 0, len(s.names))
	for _, name := range s.names {
		open := s.venues[name].IsOpenAt(now)
		s.setOpen(name, open)
		venues = append(venues, venueResponse{Name: name, Open: open})
	}
	writeJSON(w, http.StatusOK, venues)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.queries.WithLabelValues("status").Inc()
	name, hours := venueFrom(r)

	at, err := s.instant(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := statusResponse{
		Venue: name,
		At:    at,
		Open:  hours.IsOpenAt(at),
	}
	if next, err := hours.NextOpenWithin(at, s.horizon); err == nil {
		resp.NextOpen = internal.Ptr(next)
	}
	if next, err := hours.NextCloseWithin(at, s.horizon); err == nil {
		resp.NextClose = internal.Ptr(next)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDate(w http.ResponseWriter, r *http.Request) {
	s.queries.WithLabelValues("date").Inc()
	_, hours := venueFrom(r)

	loc := hours.Timezone()
	if loc == nil {
		loc = time.UTC
	}
	raw := chi.URLParam(r, "date")
	date, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := newDayResponse(hours.ForDate(date))
	resp.Date = raw
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	s.queries.WithLabelValues("week").Inc()
	name, hours := venueFrom(r)

	at, err := s.instant(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	week := hours.ForWeekOf(at)
	resp := weekResponse{Venue: name}
	for _, day := range openinghours.Days() {
		d := newDayResponse(week[day])
		d.Day = day.String()
		resp.Days = append(resp.Days, d)
	}
	for _, group := range hours.ForWeekCombined() {
		g := groupResponse{Hours: rangeStrings(group.Hours)}
		for _, day := range group.Days {
			g.Days = append(g.Days, day.String())
		}
		resp.Regular = append(resp.Regular, g)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStructuredData(w http.ResponseWriter, r *http.Request) {
	s.queries.WithLabelValues("structured-data").Inc()
	_, hours := venueFrom(r)

	data, err := hours.MarshalStructuredData()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/ld+json")
	_, _ = w.Write(data)
}

func newDayResponse(h openinghours.OpeningHoursForDay) dayResponse {
	return dayResponse{
		Open:  !h.IsEmpty(),
		Hours: rangeStrings(h),
		Data:  h.Data(),
	}
}

func rangeStrings(h openinghours.OpeningHoursForDay) []string {
	ranges := h.Ranges()
	s := make([]string, len(ranges))
	for i, r := range ranges {
		s[i] = r.String()
	}
	return s
}
