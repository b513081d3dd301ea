package watcher

import (
	"context"
	"log"
	"time"

	"f1strategydash/pkg/ergast"
	"f1strategydash/pkg/model"
	"f1strategydash/pkg/pubsub"
	"f1strategydash/pkg/queues"
)

const raceDateLayout = "2006-01-02"

type ScheduleSource interface {
	Schedule(ctx context.Context, year int) ([]ergast.Race, error)
}

// Watcher polls the season schedule and announces races whose date has
// passed since the previous poll. The first poll only seeds the known set,
// so restarting the process does not replay the whole season.
type Watcher struct {
	ctx      context.Context
	source   ScheduleSource
	year     int
	interval time.Duration
	known    map[string]bool
	seeded   bool
}

func NewWatcher(ctx context.Context, source ScheduleSource, year int, interval time.Duration) *Watcher {
	return &Watcher{
		ctx:      ctx,
		source:   source,
		year:     year,
		interval: interval,
		known:    make(map[string]bool),
	}
}

func (w *Watcher) Start(exitChan <-chan bool) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.announce(w.poll(time.Now()))
	for {
		select {
		case <-exitChan:
			return
		case <-ticker.C:
			w.announce(w.poll(time.Now()))
		}
	}
}

// poll returns the events for races completed since the last call.
func (w *Watcher) poll(now time.Time) []model.RaceAvailable {
	races, err := w.source.Schedule(w.ctx, w.year)
	if err != nil {
		log.Printf("Error fetching season schedule: %s", err.Error())
		return nil
	}

	fresh := queues.NewQueue[model.RaceAvailable]()
	for _, race := range races {
		date, err := time.Parse(raceDateLayout, race.Date)
		if err != nil || date.After(now) {
			continue
		}
		if w.known[race.RaceName] {
			continue
		}
		w.known[race.RaceName] = true
		if w.seeded {
			fresh.Push(model.RaceAvailable{
				Year: w.year,
				Race: race.RaceName,
				Date: race.Date,
			})
		}
	}
	w.seeded = true

	events := make([]model.RaceAvailable, 0, fresh.Len())
	for !fresh.IsEmpty() {
		events = append(events, fresh.Pop())
	}
	return events
}

func (w *Watcher) announce(events []model.RaceAvailable) {
	for _, event := range events {
		log.Printf("Race results available: %d %s\n", event.Year, event.Race)
		pubsub.RaceAvailablePubSub.Publish(pubsub.TopicRaceAvailable, event)
		pubsub.RefreshPubSub.Publish(pubsub.TopicRefresh, event.Race)
	}
}
