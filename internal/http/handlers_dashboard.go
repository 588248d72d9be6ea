package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/babburibeiro/WebAppCashUp/internal/core"
	"github.com/babburibeiro/WebAppCashUp/internal/log"
)

var errInvalidMonths = errors.New("months must be between 1 and 36")

// monthParam resolves the ?month query parameter, defaulting to the
// current month.
func (s *Server) monthParam(r *http.Request) (core.MonthKey, error) {
	raw := r.URL.Query().Get("month")
	if raw == "" {
		return core.MonthKeyAt(s.now()), nil
	}
	key := core.MonthKey(raw)
	if !core.ValidMonthKey(key) {
		return "", core.ErrInvalidMonthKey
	}
	return key, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month, err := s.monthParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	key := overviewKeyPrefix + string(month)
	if cached, ok := s.overviewCache.Get(key); ok {
		s.logger.DebugContext(r.Context(), "overview cache hit", log.FieldMonth, month)
		s.writeJSON(w, r, http.StatusOK, cached)
		return
	}

	overview, err := s.svc.MonthOverview(r.Context(), month, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.overviewCache.Set(key, overview)
	s.writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	month, err := s.monthParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	months := 6
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 36 {
			s.badRequest(w, r, errInvalidMonths)
			return
		}
		months = n
	}

	key := trendKeyPrefix + string(month) + ":" + strconv.Itoa(months)
	if cached, ok := s.trendCache.Get(key); ok {
		s.logger.DebugContext(r.Context(), "trend cache hit", log.FieldMonth, month)
		s.writeJSON(w, r, http.StatusOK, cached)
		return
	}

	points, err := s.svc.Trend(r.Context(), month, months)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.trendCache.Set(key, points)
	s.writeJSON(w, r, http.StatusOK, points)
}
