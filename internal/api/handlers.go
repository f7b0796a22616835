package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/banshee-data/lap.report/internal/chart"
	"github.com/banshee-data/lap.report/internal/db"
	"github.com/banshee-data/lap.report/internal/geo"
	"github.com/banshee-data/lap.report/internal/lap"
	"github.com/banshee-data/lap.report/internal/units"
)

func (s *Server) listLaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	laps, err := s.db.ListLaps()
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list laps: %v", err))
		return
	}
	if laps == nil {
		laps = []db.LapRecord{} // empty store encodes as [], not null
	}
	s.writeJSON(w, laps)
}

func (s *Server) getLap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "id must be a lap id")
		return
	}

	l, err := s.db.GetLap(id)
	if err != nil {
		s.writeJSONError(w, http.StatusNotFound, fmt.Sprintf("lap %d: %v", id, err))
		return
	}

	s.writeJSON(w, map[string]interface{}{
		"name":   l.Name,
		"points": l.Points,
		"speeds": l.Speeds,
	})
}

// comparisonRequest bundles everything a handler needs after resolving
// the ref/other query params against the lap store.
type comparisonRequest struct {
	refID, otherID int64
	ref, other     *lap.Lap
	cmp            *lap.Comparison
}

// loadComparison parses ref/other lap ids from the request and runs the
// comparison.
func (s *Server) loadComparison(r *http.Request) (*comparisonRequest, error) {
	refID, err := strconv.ParseInt(r.URL.Query().Get("ref"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ref must be a lap id")
	}
	otherID, err := strconv.ParseInt(r.URL.Query().Get("other"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("other must be a lap id")
	}

	ref, err := s.db.GetLap(refID)
	if err != nil {
		return nil, err
	}
	other, err := s.db.GetLap(otherID)
	if err != nil {
		return nil, err
	}

	c, err := lap.Compare(ref, other)
	if err != nil {
		return nil, err
	}
	return &comparisonRequest{refID: refID, otherID: otherID, ref: ref, other: other, cmp: c}, nil
}

func (s *Server) compareLaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	targetUnits, ok := s.requestUnits(r)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid units, must be one of: %s", units.GetValidUnitsString()))
		return
	}

	req, err := s.loadComparison(r)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.URL.Query().Get("record") == "true" {
		if _, err := s.db.RecordComparison(req.refID, req.otherID, req.cmp.Summary); err != nil {
			s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to record comparison: %v", err))
			return
		}
	}

	s.writeJSON(w, map[string]interface{}{
		"units":      targetUnits,
		"comparison": convertComparisonSpeeds(req.cmp, targetUnits),
	})
}

// convertComparisonSpeeds returns a copy of c with speed series converted
// from stored m/s to the target units. Distances stay in meters.
func convertComparisonSpeeds(c *lap.Comparison, targetUnits string) *lap.Comparison {
	out := *c
	out.RefSpeeds = make([]float64, len(c.RefSpeeds))
	out.MatchedSpeeds = make([]float64, len(c.MatchedSpeeds))
	for i, v := range c.RefSpeeds {
		out.RefSpeeds[i] = units.ConvertSpeed(v, targetUnits)
	}
	for i, v := range c.MatchedSpeeds {
		out.MatchedSpeeds[i] = units.ConvertSpeed(v, targetUnits)
	}
	out.Summary.MeanDelta = units.ConvertSpeed(c.Summary.MeanDelta, targetUnits)
	out.Summary.MaxAbsDelta = units.ConvertSpeed(c.Summary.MaxAbsDelta, targetUnits)
	out.Summary.StdDevDelta = units.ConvertSpeed(c.Summary.StdDevDelta, targetUnits)
	return &out
}

func (s *Server) listComparisons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	comparisons, err := s.db.ListComparisons(limit)
	if err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list comparisons: %v", err))
		return
	}
	if comparisons == nil {
		comparisons = []db.ComparisonRecord{}
	}
	s.writeJSON(w, comparisons)
}

func (s *Server) compareChart(w http.ResponseWriter, r *http.Request) {
	targetUnits, ok := s.requestUnits(r)
	if !ok {
		s.writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid units, must be one of: %s", units.GetValidUnitsString()))
		return
	}

	req, err := s.loadComparison(r)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.WriteReport(w, req.cmp, targetUnits); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render report: %v", err))
	}
}

func (s *Server) trackMapChart(w http.ResponseWriter, r *http.Request) {
	req, err := s.loadComparison(r)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	refTrack, zone, err := geo.ProjectTrack(req.ref.Points)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	otherTrack, err := zone.Project(req.other.Points)
	if err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	scatter := chart.TrackMap(req.cmp.Reference, refTrack, req.cmp.Other, otherTrack)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := scatter.Render(w); err != nil {
		s.writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render track map: %v", err))
	}
}
