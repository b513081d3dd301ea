package ergast

// Response envelope of the results API. Every endpoint wraps its payload in
// MRData.RaceTable; which of Results, QualifyingResults and Laps is filled
// depends on the endpoint.
type Response struct {
	MRData MRData `json:"MRData"`
}

type MRData struct {
	Total     string    `json:"total"`
	RaceTable RaceTable `json:"RaceTable"`
}

type RaceTable struct {
	Season string `json:"season"`
	Round  string `json:"round"`
	Races  []Race `json:"Races"`
}

type Race struct {
	Season            string             `json:"season"`
	Round             string             `json:"round"`
	RaceName          string             `json:"raceName"`
	Date              string             `json:"date"`
	Time              string             `json:"time"`
	Circuit           Circuit            `json:"Circuit"`
	Results           []Result           `json:"Results,omitempty"`
	QualifyingResults []QualifyingResult `json:"QualifyingResults,omitempty"`
	Laps              []Lap              `json:"Laps,omitempty"`
}

type Circuit struct {
	CircuitID   string `json:"circuitId"`
	CircuitName string `json:"circuitName"`
}

type Driver struct {
	DriverID   string `json:"driverId"`
	Code       string `json:"code"`
	GivenName  string `json:"givenName"`
	FamilyName string `json:"familyName"`
}

func (d Driver) FullName() string {
	return d.GivenName + " " + d.FamilyName
}

type Constructor struct {
	ConstructorID string `json:"constructorId"`
	Name          string `json:"name"`
}

type Result struct {
	Position    string      `json:"position"`
	Points      string      `json:"points"`
	Status      string      `json:"status"`
	Driver      Driver      `json:"Driver"`
	Constructor Constructor `json:"Constructor"`
}

type QualifyingResult struct {
	Position    string      `json:"position"`
	Driver      Driver      `json:"Driver"`
	Constructor Constructor `json:"Constructor"`
	Q1          string      `json:"Q1,omitempty"`
	Q2          string      `json:"Q2,omitempty"`
	Q3          string      `json:"Q3,omitempty"`
}

// BestTime returns the best available qualifying lap: Q3 when the driver
// reached it, otherwise Q2, otherwise Q1.
func (q QualifyingResult) BestTime() string {
	if q.Q3 != "" {
		return q.Q3
	}
	if q.Q2 != "" {
		return q.Q2
	}
	return q.Q1
}

type Lap struct {
	Number  string   `json:"number"`
	Timings []Timing `json:"Timings"`
}

type Timing struct {
	DriverID string `json:"driverId"`
	Position string `json:"position"`
	Time     string `json:"time"`
}
