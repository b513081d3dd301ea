package webserver

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"f1strategydash/pkg/model"
	"f1strategydash/pkg/pipeline"
	"f1strategydash/pkg/settings"
)

var addr = ":8080"

// Dashboard is the slice of the pipeline the handlers need.
type Dashboard interface {
	LoadSession(ctx context.Context, year int, race string, st model.SessionType) (*model.SessionData, error)
	QualifyingVsRace(ctx context.Context, year int, race string) ([]model.GridFinish, error)
	TeamWeatherBreakdown(ctx context.Context, year int, race string) ([]model.TeamConditionStats, error)
	Config() pipeline.Config
}

type Manager struct {
	r        *mux.Router
	dash     Dashboard
	prefs    *settings.Manager
	thumbDir string
}

func NewManager(dash Dashboard, prefs *settings.Manager, thumbDir string) *Manager {
	m := &Manager{
		r:        mux.NewRouter(),
		dash:     dash,
		prefs:    prefs,
		thumbDir: thumbDir,
	}

	m.rootHandlers()
	return m
}

func (m *Manager) router() *mux.Router {
	return m.r
}

func (m *Manager) rootHandlers() {
	m.r.HandleFunc("/", m.dashboardHandler).Methods(http.MethodGet)

	m.r.HandleFunc("/charts/laptimes.svg", m.lapTimesChartHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/gridfinish.svg", m.gridFinishChartHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/gridfinish.png", m.gridFinishThumbHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/charts/teamweather.svg", m.teamWeatherChartHandler).Methods(http.MethodGet)

	m.r.HandleFunc("/api/session", m.sessionHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/api/compare", m.compareHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/api/gridfinish", m.gridFinishHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/api/teamweather", m.teamWeatherHandler).Methods(http.MethodGet)

	m.r.HandleFunc("/tables/gridfinish.txt", m.gridFinishTableHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/tables/compare.txt", m.compareTableHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/tables/laps.txt", m.lapsTableHandler).Methods(http.MethodGet)

	m.r.HandleFunc("/api/preferences", m.preferencesHandler).Methods(http.MethodGet)
	m.r.HandleFunc("/api/preferences", m.updatePreferencesHandler).Methods(http.MethodPost)
	m.r.HandleFunc("/api/alerts/toggle", m.toggleAlertHandler).Methods(http.MethodPost)

	m.r.HandleFunc("/ws", m.wsHandler)
}

func (m *Manager) Debug() {
	_ = m.router().Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err == nil {
			fmt.Println("ROUTE:", pathTemplate)
		}
		methods, err := route.GetMethods()
		if err == nil {
			fmt.Println("Methods:", strings.Join(methods, ","))
		}
		fmt.Println()
		return nil
	})
}

func (m *Manager) Serve() {
	if os.Getenv("WEBSERVER_ADDRESS") != "" {
		addr = os.Getenv("WEBSERVER_ADDRESS")
	}
	srv := &http.Server{
		Addr: addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.router(),
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.Printf("webserver listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline.
	srv.Shutdown(ctx)
}
