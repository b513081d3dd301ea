package webserver

import (
	"fmt"
	"log"
	"net/http"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"f1strategydash/pkg/helper"
	"f1strategydash/pkg/pipeline"
)

// gridFinishTableHandler renders the qualifying-vs-race view as a
// preformatted monospace table, handy for pasting into chats.
func (m *Manager) gridFinishTableHandler(w http.ResponseWriter, r *http.Request) {
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

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%d %s", m.yearParam(r), race))
	t.AppendHeader(table.Row{"Driver", "Team", "Quali", "Race", "+/-"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Quali", Align: text.AlignRight},
		{Name: "Race", Align: text.AlignRight},
		{Name: "+/-", Align: text.AlignRight},
	})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Driver, row.Team, row.QualiPos, row.RacePos, fmt.Sprintf("%+d", row.Delta)})
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		log.Printf("error writing table: %s\n", err.Error())
	}
}

// compareTableHandler renders the paired per-lap deltas of two drivers.
func (m *Manager) compareTableHandler(w http.ResponseWriter, r *http.Request) {
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

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s vs %s: %s", driverA, driverB, s.ID))
	t.AppendHeader(table.Row{"Lap", driverA, driverB, "Delta"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Delta", Align: text.AlignRight},
	})
	for _, lap := range cmp.Laps {
		t.AppendRow(table.Row{
			lap.Lap,
			helper.SecondsToMinutes(lap.TimeA),
			helper.SecondsToMinutes(lap.TimeB),
			helper.SecondsToDiff(lap.Delta),
		})
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		log.Printf("error writing table: %s\n", err.Error())
	}
}

// lapsTableHandler renders one driver's laps with sector times and tyre.
func (m *Manager) lapsTableHandler(w http.ResponseWriter, r *http.Request) {
	race, err := raceParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	driver := r.URL.Query().Get("driver")
	if driver == "" {
		writeError(w, errors.Wrap(pipeline.ErrNotFound, "missing driver parameter"))
		return
	}

	s, err := m.dash.LoadSession(r.Context(), m.yearParam(r), race, sessionParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	if !s.HasDriver(driver) {
		writeError(w, errors.Wrapf(pipeline.ErrNotFound, "driver %q", driver))
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(fmt.Sprintf("%s: %s", driver, s.ID))
	t.AppendHeader(table.Row{"Lap", "Time", "S1", "S2", "S3", "Tyre"})
	for _, lap := range s.LapsForDriver(driver) {
		t.AppendRow(table.Row{
			lap.Lap,
			helper.SecondsToMinutes(lap.Time),
			helper.ToSectorTime(lap.S1),
			helper.ToSectorTime(lap.S2),
			helper.ToSectorTime(lap.S3),
			lap.Compound,
		})
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		log.Printf("error writing table: %s\n", err.Error())
	}
}
