package ergast

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleJSON = `{"MRData":{"total":"2","RaceTable":{"season":"2023","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-05",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"}},
  {"season":"2023","round":"2","raceName":"Saudi Arabian Grand Prix","date":"2023-03-19",
   "Circuit":{"circuitId":"jeddah","circuitName":"Jeddah Corniche Circuit"}}
]}}}`

const resultsJSON = `{"MRData":{"total":"3","RaceTable":{"season":"2023","round":"1","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-05",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"},
   "Results":[
     {"position":"1","points":"25","status":"Finished",
      "Driver":{"driverId":"max_verstappen","code":"VER","givenName":"Max","familyName":"Verstappen"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull"}},
     {"position":"2","points":"18","status":"Finished",
      "Driver":{"driverId":"perez","code":"PER","givenName":"Sergio","familyName":"Perez"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull"}},
     {"position":"3","points":"15","status":"Finished",
      "Driver":{"driverId":"alonso","code":"ALO","givenName":"Fernando","familyName":"Alonso"},
      "Constructor":{"constructorId":"aston_martin","name":"Aston Martin"}}
]}]}}}`

const qualifyingJSON = `{"MRData":{"total":"3","RaceTable":{"season":"2023","round":"1","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-04",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"},
   "QualifyingResults":[
     {"position":"1",
      "Driver":{"driverId":"max_verstappen","code":"VER","givenName":"Max","familyName":"Verstappen"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull"},
      "Q1":"1:31.295","Q2":"1:30.503","Q3":"1:29.708"},
     {"position":"2",
      "Driver":{"driverId":"perez","code":"PER","givenName":"Sergio","familyName":"Perez"},
      "Constructor":{"constructorId":"red_bull","name":"Red Bull"},
      "Q1":"1:31.479","Q2":"1:30.746","Q3":"1:29.846"},
     {"position":"16",
      "Driver":{"driverId":"hulkenberg","code":"HUL","givenName":"Nico","familyName":"Hulkenberg"},
      "Constructor":{"constructorId":"haas","name":"Haas F1 Team"},
      "Q1":"1:31.055"}
]}]}}}`

const lapsJSON = `{"MRData":{"total":"4","RaceTable":{"season":"2023","round":"1","Races":[
  {"season":"2023","round":"1","raceName":"Bahrain Grand Prix","date":"2023-03-05",
   "Circuit":{"circuitId":"bahrain","circuitName":"Bahrain International Circuit"},
   "Laps":[
     {"number":"1","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:39.019"},
       {"driverId":"perez","position":"2","time":"1:40.230"}]},
     {"number":"2","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:36.871"},
       {"driverId":"perez","position":"2","time":"1:37.584"}]}
]}]}}}`

const emptyJSON = `{"MRData":{"total":"0","RaceTable":{"season":"2030","Races":[]}}}`

// two pages; the page boundary splits lap 2 between them
const lapsPage1JSON = `{"MRData":{"total":"150","RaceTable":{"season":"2023","round":"2","Races":[
  {"season":"2023","round":"2","raceName":"Saudi Arabian Grand Prix","date":"2023-03-19",
   "Circuit":{"circuitId":"jeddah","circuitName":"Jeddah Corniche Circuit"},
   "Laps":[
     {"number":"1","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:33.500"},
       {"driverId":"perez","position":"2","time":"1:34.100"}]},
     {"number":"2","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:32.900"}]}
]}]}}}`

const lapsPage2JSON = `{"MRData":{"total":"150","RaceTable":{"season":"2023","round":"2","Races":[
  {"season":"2023","round":"2","raceName":"Saudi Arabian Grand Prix","date":"2023-03-19",
   "Circuit":{"circuitId":"jeddah","circuitName":"Jeddah Corniche Circuit"},
   "Laps":[
     {"number":"2","Timings":[
       {"driverId":"perez","position":"2","time":"1:33.400"}]},
     {"number":"3","Timings":[
       {"driverId":"max_verstappen","position":"1","time":"1:33.000"},
       {"driverId":"perez","position":"2","time":"1:33.600"}]}
]}]}}}`

func fixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/2023.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, scheduleJSON)
	})
	mux.HandleFunc("/2023/1/results.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsJSON)
	})
	mux.HandleFunc("/2023/1/qualifying.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, qualifyingJSON)
	})
	mux.HandleFunc("/2023/1/laps.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, lapsJSON)
	})
	mux.HandleFunc("/2023/2/laps.json", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("offset") == "0" {
			fmt.Fprint(w, lapsPage1JSON)
			return
		}
		fmt.Fprint(w, lapsPage2JSON)
	})
	mux.HandleFunc("/2030.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, emptyJSON)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSchedule(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	races, err := c.Schedule(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, races, 2)
	assert.Equal(t, "Bahrain Grand Prix", races[0].RaceName)
	assert.Equal(t, "1", races[0].Round)
}

func TestFindRound(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	race, err := c.FindRound(context.Background(), 2023, "Bahrain")
	require.NoError(t, err)
	assert.Equal(t, "1", race.Round)

	race, err = c.FindRound(context.Background(), 2023, "Jeddah")
	require.NoError(t, err)
	assert.Equal(t, "2", race.Round)

	_, err = c.FindRound(context.Background(), 2023, "Monza")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRaceResults(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	race, err := c.RaceResults(context.Background(), 2023, "1")
	require.NoError(t, err)
	require.Len(t, race.Results, 3)
	assert.Equal(t, "VER", race.Results[0].Driver.Code)
	assert.Equal(t, "Red Bull", race.Results[0].Constructor.Name)
	assert.Equal(t, "Max Verstappen", race.Results[0].Driver.FullName())
}

func TestQualifyingResultsBestTimeFallback(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	race, err := c.QualifyingResults(context.Background(), 2023, "1")
	require.NoError(t, err)
	require.Len(t, race.QualifyingResults, 3)
	// reached Q3
	assert.Equal(t, "1:29.708", race.QualifyingResults[0].BestTime())
	// knocked out in Q1
	assert.Equal(t, "1:31.055", race.QualifyingResults[2].BestTime())
}

func TestLapTimings(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	laps, err := c.LapTimings(context.Background(), 2023, "1")
	require.NoError(t, err)
	require.Len(t, laps, 2)
	assert.Equal(t, "max_verstappen", laps[0].Timings[0].DriverID)
	assert.Equal(t, "1", laps[0].Timings[0].Position)
}

func TestLapTimingsFollowsPagination(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	laps, err := c.LapTimings(context.Background(), 2023, "2")
	require.NoError(t, err)
	require.Len(t, laps, 3)

	// lap 2 was split across the page boundary and must come back whole
	require.Len(t, laps[1].Timings, 2)
	assert.Equal(t, "max_verstappen", laps[1].Timings[0].DriverID)
	assert.Equal(t, "perez", laps[1].Timings[1].DriverID)
	require.Len(t, laps[2].Timings, 2)
}

func TestEmptySeasonIsNoData(t *testing.T) {
	srv := fixtureServer(t)
	c := NewClient(srv.URL)

	_, err := c.Schedule(context.Background(), 2030)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewClient(srv.URL)

	_, err := c.Schedule(context.Background(), 2023)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}
