package webserver

import (
	"net/http"
	"strconv"

	"f1strategydash/pkg/settings"
)

// Preference changes apply on the next restart; the running pipeline keeps
// the config it was started with.

func (m *Manager) preferencesHandler(w http.ResponseWriter, r *http.Request) {
	if m.prefs == nil {
		http.Error(w, "settings store not configured", http.StatusServiceUnavailable)
		return
	}
	p, err := m.prefs.Preferences()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, p)
}

func (m *Manager) updatePreferencesHandler(w http.ResponseWriter, r *http.Request) {
	if m.prefs == nil {
		http.Error(w, "settings store not configured", http.StatusServiceUnavailable)
		return
	}

	if v := r.URL.Query().Get("wetThreshold"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "bad wetThreshold", http.StatusBadRequest)
			return
		}
		if err := m.prefs.SetWetThreshold(threshold); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	if v := r.URL.Query().Get("season"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "bad season", http.StatusBadRequest)
			return
		}
		if err := m.prefs.SetDefaultSeason(year); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	p, err := m.prefs.Preferences()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, p)
}

func (m *Manager) toggleAlertHandler(w http.ResponseWriter, r *http.Request) {
	if m.prefs == nil {
		http.Error(w, "settings store not configured", http.StatusServiceUnavailable)
		return
	}

	q := r.URL.Query()
	user := q.Get("user")
	chat := q.Get("chat")
	if user == "" || chat == "" {
		http.Error(w, "user and chat are required", http.StatusBadRequest)
		return
	}
	kind := settings.Race
	if q.Get("kind") == "qualifying" {
		kind = settings.Qualifying
	}
	name := q.Get("name")
	if name == "" {
		name = user
	}

	if err := m.prefs.ToggleAlert(user, name, chat, kind); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a, err := m.prefs.ListAlerts(user)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, a)
}
