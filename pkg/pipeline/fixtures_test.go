package pipeline

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"f1strategydash/pkg/ergast"
	"f1strategydash/pkg/openf1"
)

// Fixture weekend: Bahrain 2023. The live-timing API carries the laps,
// stints and weather; the results API carries schedule, classifications and
// per-lap positions. HUL only qualifies, HAM only races.

const fxSchedule = `{"MRData":{"total":"1","RaceTable":{"season":"2023","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-05",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"}}
]}}}`

const fxEmptySchedule = `{"MRData":{"total":"0","RaceTable":{"season":"2030","Races":[]}}}`

const fxResults = `{"MRData":{"total":"3","RaceTable":{"season":"2023","round":"1","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-05",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"},
   "Results":[
     {"position":"1","points":"25","status":"Finished",
      "Driver":{"driverId":"max_verstappen","code":"VER","givenName":"Max","familyName":"Verstappen"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull Racing"}},
     {"position":"2","points":"18","status":"Finished",
      "Driver":{"driverId":"perez","code":"PER","givenName":"Sergio","familyName":"Perez"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull Racing"}},
     {"position":"3","points":"15","status":"Finished",
      "Driver":{"driverId":"hamilton","code":"HAM","givenName":"Lewis","familyName":"Hamilton"},
      "Constructor":{"constructorId":"mercedes","name":"Mercedes"}}
]}]}}}`

const fxQualifying = `{"MRData":{"total":"3","RaceTable":{"season":"2023","round":"1","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-04",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"},
   "QualifyingResults":[
     {"position":"1",
      "Driver":{"driverId":"max_verstappen","code":"VER","givenName":"Max","familyName":"Verstappen"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull Racing"},
      "Q1":"1:31.295","Q2":"1:30.503","Q3":"1:29.708"},
     {"position":"2",
      "Driver":{"driverId":"hulkenberg","code":"HUL","givenName":"Nico","familyName":"Hulkenberg"},
      "Constructor":{"constructorId":"haas","name":"Haas F1 Team"},
      "Q1":"1:31.055","Q2":"1:30.801"},
     {"position":"3",
      "Driver":{"driverId":"perez","code":"PER","givenName":"Sergio","familyName":"Perez"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull Racing"},
      "Q1":"1:31.479","Q2":"1:30.746","Q3":"1:29.846"}
]}]}}}`

const fxLapTimings = `{"MRData":{"total":"9","RaceTable":{"season":"2023","round":"1","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-05",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"},
   "Laps":[
     {"number":"1","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:36.000"},
       {"driverId":"perez","position":"2","time":"1:37.000"},
       {"driverId":"hamilton","position":"3","time":"1:38.000"}]},
     {"number":"2","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:35.000"},
       {"driverId":"perez","position":"2","time":"1:36.000"},
       {"driverId":"hamilton","position":"3","time":"1:37.500"}]},
     {"number":"3","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:40.000"},
       {"driverId":"perez","position":"2","time":"1:41.000"},
       {"driverId":"hamilton","position":"3","time":"1:42.000"}]}
]}]}}}`

const fxSessions = `[
  {"session_key":9100,"meeting_key":1141,"session_name":"Race","session_type":"Race",
   "location":"Sakhir","country_name":"Bahrain","circuit_short_name":"Sakhir",
   "year":2023,"date_start":"2023-03-05T15:00:00Z","date_end":"2023-03-05T17:00:00Z"}
]`

const fxDrivers = `[
  {"session_key":9100,"driver_number":1,"name_acronym":"VER","full_name":"Max VERSTAPPEN","team_name":"Red Bull Racing"},
  {"session_key":9100,"driver_number":11,"name_acronym":"PER","full_name":"Sergio PEREZ","team_name":"Red Bull Racing"},
  {"session_key":9100,"driver_number":44,"name_acronym":"HAM","full_name":"Lewis HAMILTON","team_name":"Mercedes"}
]`

const fxLaps = `[
  {"session_key":9100,"driver_number":1,"lap_number":1,"date_start":"2023-03-05T15:05:00Z","lap_duration":96.0,"duration_sector_1":30.0,"duration_sector_2":36.0,"duration_sector_3":30.0},
  {"session_key":9100,"driver_number":1,"lap_number":2,"date_start":"2023-03-05T15:07:00Z","lap_duration":95.0,"duration_sector_1":29.5,"duration_sector_2":35.5,"duration_sector_3":30.0},
  {"session_key":9100,"driver_number":1,"lap_number":3,"date_start":"2023-03-05T15:29:00Z","lap_duration":100.0,"duration_sector_1":31.0,"duration_sector_2":38.0,"duration_sector_3":31.0},
  {"session_key":9100,"driver_number":11,"lap_number":1,"date_start":"2023-03-05T15:05:00Z","lap_duration":97.0,"duration_sector_1":30.2,"duration_sector_2":36.4,"duration_sector_3":30.4},
  {"session_key":9100,"driver_number":11,"lap_number":2,"date_start":"2023-03-05T15:07:00Z","lap_duration":96.0,"duration_sector_1":29.8,"duration_sector_2":36.0,"duration_sector_3":30.2},
  {"session_key":9100,"driver_number":11,"lap_number":3,"date_start":"2023-03-05T15:29:00Z","lap_duration":101.0,"duration_sector_1":31.4,"duration_sector_2":38.2,"duration_sector_3":31.4},
  {"session_key":9100,"driver_number":44,"lap_number":1,"date_start":"2023-03-05T15:05:00Z","lap_duration":98.0,"duration_sector_1":30.5,"duration_sector_2":36.8,"duration_sector_3":30.7},
  {"session_key":9100,"driver_number":44,"lap_number":2,"date_start":"2023-03-05T15:07:00Z","lap_duration":97.5,"duration_sector_1":30.3,"duration_sector_2":36.6,"duration_sector_3":30.6},
  {"session_key":9100,"driver_number":44,"lap_number":3,"date_start":"2023-03-05T15:29:00Z","lap_duration":102.0,"duration_sector_1":31.8,"duration_sector_2":38.6,"duration_sector_3":31.6}
]`

const fxStints = `[
  {"session_key":9100,"driver_number":1,"stint_number":1,"compound":"SOFT","lap_start":1,"lap_end":3},
  {"session_key":9100,"driver_number":11,"stint_number":1,"compound":"MEDIUM","lap_start":1,"lap_end":3},
  {"session_key":9100,"driver_number":44,"stint_number":1,"compound":"SOFT","lap_start":1,"lap_end":3}
]`

const fxWeather = `[
  {"session_key":9100,"date":"2023-03-05T15:00:00Z","air_temperature":24.8,"track_temperature":29.2,"humidity":41.0,"rainfall":0},
  {"session_key":9100,"date":"2023-03-05T15:30:00Z","air_temperature":22.1,"track_temperature":25.0,"humidity":70.0,"rainfall":1}
]`

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	resultsMux := http.NewServeMux()
	resultsMux.HandleFunc("/2023.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxSchedule)
	})
	resultsMux.HandleFunc("/2030.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxEmptySchedule)
	})
	resultsMux.HandleFunc("/2023/1/results.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxResults)
	})
	resultsMux.HandleFunc("/2023/1/qualifying.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxQualifying)
	})
	resultsMux.HandleFunc("/2023/1/laps.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxLapTimings)
	})
	resultsSrv := httptest.NewServer(resultsMux)
	t.Cleanup(resultsSrv.Close)

	timingMux := http.NewServeMux()
	timingMux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("year") == "2023" && r.URL.Query().Get("session_type") == "Race" {
			fmt.Fprint(w, fxSessions)
			return
		}
		fmt.Fprint(w, "[]")
	})
	timingMux.HandleFunc("/drivers", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxDrivers)
	})
	timingMux.HandleFunc("/laps", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxLaps)
	})
	timingMux.HandleFunc("/stints", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxStints)
	})
	timingMux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, fxWeather)
	})
	timingSrv := httptest.NewServer(timingMux)
	t.Cleanup(timingSrv.Close)

	return New(ergast.NewClient(resultsSrv.URL), openf1.NewClient(timingSrv.URL), Config{DefaultYear: 2023})
}
