package notification

import (
	"context"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/nikoksr/notify"

	"f1strategydash/pkg/model"
	"f1strategydash/pkg/pubsub"
	"f1strategydash/pkg/settings"
)

type Lister interface {
	ListSubscribers(kind string) ([]settings.Subscriber, error)
}

// Manager forwards results-available events to everyone who enabled the
// race alert.
type Manager struct {
	ctx    context.Context
	lister Lister
	bot    *tgbotapi.BotAPI
}

func NewManager(ctx context.Context, bot *tgbotapi.BotAPI, lister Lister) *Manager {
	return &Manager{
		ctx:    ctx,
		bot:    bot,
		lister: lister,
	}
}

func (m *Manager) Start(exitChan <-chan bool) {
	availableChan := pubsub.RaceAvailablePubSub.Subscribe(pubsub.TopicRaceAvailable)
	for {
		select {
		case <-exitChan:
			return
		case race := <-availableChan:
			m.handleAlert(race)
		}
	}
}

func (m *Manager) handleAlert(race model.RaceAvailable) {
	recipients, err := m.lister.ListSubscribers(settings.Race)
	if err != nil {
		log.Printf("Error listing race alert subscribers: %s", err.Error())
		return
	}
	log.Printf("Sending results alert for %d %s to %d telegram users\n", race.Year, race.Race, len(recipients))
	if err := m.sendAlert(recipients, race); err != nil {
		log.Printf("Error notifying subscribers: %s", err.Error())
	}
}

func (m *Manager) sendAlert(subs []settings.Subscriber, race model.RaceAvailable) error {
	if len(subs) == 0 {
		return nil
	}

	tg := Telegram{}
	tg.SetClient(m.bot)

	for _, sub := range subs {
		chatID, _ := strconv.ParseInt(sub.ChatID, 0, 64)
		tg.AddReceivers(chatID)
	}

	n := notify.NewWithServices(&tg)
	return n.Send(m.ctx, "Race results are in:", race.String())
}
