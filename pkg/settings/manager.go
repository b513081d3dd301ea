package settings

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const (
	DefaultDbName = "./f1strategydash.db"

	// alert kinds a subscriber can toggle
	Qualifying = "Qualifying"
	Race       = "Race"

	defaultWetThreshold = 0.0
	defaultSeason       = 2023
)

type Subscriber struct {
	ID     string
	Name   string
	ChatID string
}

// Preferences is the dashboard configuration kept across restarts.
type Preferences struct {
	WetThreshold  float64
	DefaultSeason int
}

func DefaultPreferences() Preferences {
	return Preferences{
		WetThreshold:  defaultWetThreshold,
		DefaultSeason: defaultSeason,
	}
}

type Alerts map[string]bool

func AllAlertsDisabled() Alerts {
	return Alerts{
		Qualifying: false,
		Race:       false,
	}
}

func (a Alerts) QualifyingEnabledInt() int {
	if a[Qualifying] {
		return 1
	}
	return 0
}

func (a Alerts) RaceEnabledInt() int {
	if a[Race] {
		return 1
	}
	return 0
}

func (a Alerts) String() string {
	status := []string{}
	status = append(status, fmt.Sprintf("%s %q results alert", symbolStatus(a[Qualifying]), Qualifying))
	status = append(status, fmt.Sprintf("%s %q results alert", symbolStatus(a[Race]), Race))
	return strings.Join(status, "\n")
}

func symbolStatus(enabled bool) string {
	if enabled {
		return "🔔"
	}
	return "🔕"
}

func (a *Alerts) setKindEnabledFlag(kind string, enabled bool) {
	(*a)[kind] = enabled
}

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager(dbName string) (*Manager, error) {
	if dbName == "" {
		dbName = DefaultDbName
	}
	db, err := sql.Open("sqlite3", dbName)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, err
	}

	for _, stmt := range []string{buildCreateAlertsTable(), buildCreatePreferencesTable()} {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("error init database: %s\n", err)
			return nil, err
		}
	}

	return &Manager{
		db: db,
		mu: sync.Mutex{},
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// Preferences returns the stored dashboard configuration, falling back to
// the defaults when nothing has been saved yet.
func (m *Manager) Preferences() (Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := DefaultPreferences()
	sqlCmd, read := buildSelectPreferencesCommand()
	rows, err := m.db.Query(sqlCmd)
	if err != nil {
		return p, err
	}
	return read(rows)
}

func (m *Manager) SetWetThreshold(threshold float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.preferences()
	if err != nil {
		return err
	}
	p.WetThreshold = threshold
	return m.savePreferences(p)
}

func (m *Manager) SetDefaultSeason(year int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.preferences()
	if err != nil {
		return err
	}
	p.DefaultSeason = year
	return m.savePreferences(p)
}

// ToggleAlert flips one alert kind for the subscriber, creating the
// subscription row on first use.
func (m *Manager) ToggleAlert(userID, name, chatID, kind string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, err := m.listAlerts(userID)
	if err != nil {
		return err
	}

	a.setKindEnabledFlag(kind, !a[kind])
	cmd, args := buildUpsertAlertsCommand(userID, name, chatID, a)
	_, err = m.db.Exec(cmd, args...)
	if err != nil {
		log.Printf("error updating database: %s\n", err)
		return err
	}
	return nil
}

func (m *Manager) ListAlerts(userID string) (Alerts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listAlerts(userID)
}

// ListSubscribers returns everyone who enabled the alert kind.
func (m *Manager) ListSubscribers(kind string) ([]Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := []Subscriber{}
	sqlCmd, read := buildSelectSubscribersCommand(kind)
	rows, err := m.db.Query(sqlCmd)
	if err != nil {
		return subs, err
	}
	return read(rows)
}

func (m *Manager) listAlerts(userID string) (Alerts, error) {
	a := AllAlertsDisabled()

	sqlCmd, args, read := buildSelectUserCommand(userID)
	rows, err := m.db.Query(sqlCmd, args...)
	if err != nil {
		return a, err
	}
	return read(rows)
}

func (m *Manager) preferences() (Preferences, error) {
	p := DefaultPreferences()
	sqlCmd, read := buildSelectPreferencesCommand()
	rows, err := m.db.Query(sqlCmd)
	if err != nil {
		return p, err
	}
	return read(rows)
}

func (m *Manager) savePreferences(p Preferences) error {
	cmd, args := buildUpsertPreferencesCommand(p)
	_, err := m.db.Exec(cmd, args...)
	if err != nil {
		log.Printf("error updating database: %s\n", err)
	}
	return err
}
