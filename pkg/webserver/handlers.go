package webserver

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"f1strategydash/pkg/charts"
	"f1strategydash/pkg/helper"
	"f1strategydash/pkg/model"
	"f1strategydash/pkg/pipeline"
)

type errorPayload struct {
	Error string `json:"error"`
}

// writeError maps the pipeline error kinds onto HTTP statuses. Missing data
// is the user asking for something that does not exist; upstream trouble is
// a gateway problem.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, pipeline.ErrDataUnavailable) || errors.Is(err, pipeline.ErrNotFound) {
		status = http.StatusNotFound
	}
	log.Printf("request failed: %s\n", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorPayload{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error encoding response: %s\n", err.Error())
	}
}

func (m *Manager) yearParam(r *http.Request) int {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year == 0 {
		return m.dash.Config().DefaultYear
	}
	return year
}

func raceParam(r *http.Request) (string, error) {
	race := r.URL.Query().Get("race")
	if race == "" {
		return "", errors.Wrap(pipeline.ErrNotFound, "missing race parameter")
	}
	return race, nil
}

func sessionParam(r *http.Request) model.SessionType {
	switch r.URL.Query().Get("session") {
	case "Q":
		return model.SessionQualifying
	case "S":
		return model.SessionSprint
	case "P":
		return model.SessionPractice
	default:
		return model.SessionRace
	}
}

func (m *Manager) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	data := dashboardData{
		Year: m.dash.Config().DefaultYear,
		Race: r.URL.Query().Get("race"),
	}
	if data.Race == "" {
		data.Race = "Bahrain"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		log.Printf("error rendering dashboard: %s\n", err.Error())
	}
}

func (m *Manager) sessionHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := m.dash.LoadSession(r.Context(), m.yearParam(r), race, sessionParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, s)
}

func (m *Manager) compareHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	driverA := r.URL.Query().Get("driverA")
	driverB := r.URL.Query().Get("driverB")

	s, err := m.dash.LoadSession(r.Context(), m.yearParam(r), race, sessionParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	cmp, err := pipeline.CompareDrivers(s, driverA, driverB)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, cmp)
}

func (m *Manager) gridFinishHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := m.dash.QualifyingVsRace(r.Context(), m.yearParam(r), race)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (m *Manager) teamWeatherHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := m.dash.TeamWeatherBreakdown(r.Context(), m.yearParam(r), race)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, rows)
}

func (m *Manager) lapTimesChartHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	s, err := m.dash.LoadSession(r.Context(), m.yearParam(r), race, sessionParam(r))
	if err != nil {
		writeError(w, err)
		return
	}

	drivers := s.Drivers()
	if picked := r.URL.Query().Get("drivers"); picked != "" {
		drivers = strings.Split(picked, ",")
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := charts.RenderLapTimes(w, s, drivers); err != nil {
		log.Printf("error rendering lap times chart: %s\n", err.Error())
	}
}

func (m *Manager) gridFinishChartHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	rows, err := m.dash.QualifyingVsRace(r.Context(), m.yearParam(r), race)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := charts.RenderGridFinish(w, fmt.Sprintf("%d %s", m.yearParam(r), race), rows); err != nil {
		log.Printf("error rendering grid-finish chart: %s\n", err.Error())
	}
}

// gridFinishThumbHandler serves a cached PNG thumbnail, rendering it on
// first request.
func (m *Manager) gridFinishThumbHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	year := m.yearParam(r)

	path := filepath.Join(m.thumbDir, fmt.Sprintf("gridfinish-%d-%s.png", year, helper.ToID(race)))
	if _, err := os.Stat(path); err != nil {
		rows, err := m.dash.QualifyingVsRace(r.Context(), year, race)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := charts.RenderGridFinishPNG(path, rows); err != nil {
			writeError(w, errors.Wrap(err, "rendering thumbnail"))
			return
		}
	}
	http.ServeFile(w, r, path)
}
