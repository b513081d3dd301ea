package settings

import (
	"database/sql"
)

func buildCreateAlertsTable() string {
	return `CREATE TABLE IF NOT EXISTS alerts (
		userid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chatid TEXT NOT NULL,
		qualifying INTEGER,
		race INTEGER);`
}

func buildCreatePreferencesTable() string {
	return `CREATE TABLE IF NOT EXISTS preferences (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		wet_threshold REAL NOT NULL,
		default_season INTEGER NOT NULL);`
}

func buildSelectUserCommand(userID string) (string, []any, func(*sql.Rows) (Alerts, error)) {
	cmd := `SELECT qualifying, race FROM alerts WHERE userid = ?`
	return cmd, []any{userID}, processSelectUserRows
}

func processSelectUserRows(rows *sql.Rows) (Alerts, error) {
	defer rows.Close()

	a := AllAlertsDisabled()
	// only can be one row
	if rows.Next() {
		var qualifying int
		var race int
		err := rows.Scan(&qualifying, &race)
		if err != nil {
			return a, err
		}
		a.setKindEnabledFlag(Qualifying, qualifying == 1)
		a.setKindEnabledFlag(Race, race == 1)
		return a, nil
	}
	return a, rows.Err()
}

func buildSelectSubscribersCommand(kind string) (string, func(rows *sql.Rows) ([]Subscriber, error)) {
	// column name is one of two fixed identifiers, never user input
	column := "race"
	if kind == Qualifying {
		column = "qualifying"
	}
	cmd := `SELECT userid, name, chatid FROM alerts WHERE ` + column + ` = 1`
	return cmd, processSelectSubscriberRows
}

func processSelectSubscriberRows(rows *sql.Rows) ([]Subscriber, error) {
	defer rows.Close()

	subs := make([]Subscriber, 0)
	for rows.Next() {
		var id string
		var name string
		var chatid string
		err := rows.Scan(&id, &name, &chatid)
		if err != nil {
			return subs, err
		}
		subs = append(subs, Subscriber{
			ID:     id,
			Name:   name,
			ChatID: chatid,
		})
	}
	return subs, rows.Err()
}

func buildUpsertAlertsCommand(userID, name, chatID string, a Alerts) (string, []any) {
	cmd := `INSERT OR REPLACE INTO alerts (userid, name, chatid, qualifying, race) VALUES (?, ?, ?, ?, ?)`
	return cmd, []any{userID, name, chatID, a.QualifyingEnabledInt(), a.RaceEnabledInt()}
}

func buildSelectPreferencesCommand() (string, func(*sql.Rows) (Preferences, error)) {
	return `SELECT wet_threshold, default_season FROM preferences WHERE id = 1`, processSelectPreferencesRows
}

func processSelectPreferencesRows(rows *sql.Rows) (Preferences, error) {
	defer rows.Close()

	p := DefaultPreferences()
	if rows.Next() {
		err := rows.Scan(&p.WetThreshold, &p.DefaultSeason)
		if err != nil {
			return p, err
		}
		return p, nil
	}
	return p, rows.Err()
}

func buildUpsertPreferencesCommand(p Preferences) (string, []any) {
	cmd := `INSERT OR REPLACE INTO preferences (id, wet_threshold, default_season) VALUES (1, ?, ?)`
	return cmd, []any{p.WetThreshold, p.DefaultSeason}
}
