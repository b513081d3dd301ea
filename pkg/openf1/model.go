package openf1

import "time"

// Session is one entry of the /sessions endpoint.
type Session struct {
	SessionKey       int       `json:"session_key"`
	MeetingKey       int       `json:"meeting_key"`
	SessionName      string    `json:"session_name"`
	SessionType      string    `json:"session_type"`
	Location         string    `json:"location"`
	CountryName      string    `json:"country_name"`
	CircuitShortName string    `json:"circuit_short_name"`
	Year             int       `json:"year"`
	DateStart        time.Time `json:"date_start"`
	DateEnd          time.Time `json:"date_end"`
}

// Lap is one entry of the /laps endpoint. Durations are seconds; zero when
// the timing tower had no value (out-laps, red flags).
type Lap struct {
	SessionKey      int       `json:"session_key"`
	DriverNumber    int       `json:"driver_number"`
	LapNumber       int       `json:"lap_number"`
	DateStart       time.Time `json:"date_start"`
	LapDuration     float64   `json:"lap_duration"`
	DurationSector1 float64   `json:"duration_sector_1"`
	DurationSector2 float64   `json:"duration_sector_2"`
	DurationSector3 float64   `json:"duration_sector_3"`
	IsPitOutLap     bool      `json:"is_pit_out_lap"`
}

// Stint is one tyre stint of a driver.
type Stint struct {
	SessionKey   int    `json:"session_key"`
	DriverNumber int    `json:"driver_number"`
	StintNumber  int    `json:"stint_number"`
	Compound     string `json:"compound"`
	LapStart     int    `json:"lap_start"`
	LapEnd       int    `json:"lap_end"`
}

// Covers reports whether lap falls inside the stint.
func (s Stint) Covers(lap int) bool {
	return lap >= s.LapStart && lap <= s.LapEnd
}

// Weather is one sample of the /weather endpoint. Rainfall is 0 or 1 on the
// live API but kept as a float so mm-reporting mirrors keep working.
type Weather struct {
	SessionKey       int       `json:"session_key"`
	Date             time.Time `json:"date"`
	AirTemperature   float64   `json:"air_temperature"`
	TrackTemperature float64   `json:"track_temperature"`
	Humidity         float64   `json:"humidity"`
	Rainfall         float64   `json:"rainfall"`
}

// Driver is one entry of the /drivers endpoint.
type Driver struct {
	SessionKey   int    `json:"session_key"`
	DriverNumber int    `json:"driver_number"`
	NameAcronym  string `json:"name_acronym"`
	FullName     string `json:"full_name"`
	TeamName     string `json:"team_name"`
}
