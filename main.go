package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"f1strategydash/pkg/ergast"
	"f1strategydash/pkg/notification"
	"f1strategydash/pkg/openf1"
	"f1strategydash/pkg/pipeline"
	"f1strategydash/pkg/settings"
	"f1strategydash/pkg/watcher"
	"f1strategydash/pkg/webserver"
)

const (
	EnvErgastAPIURL  = "ERGAST_API_URL"
	EnvOpenF1APIURL  = "OPENF1_API_URL"
	EnvTelegramToken = "TELEGRAM_TOKEN"
	EnvSettingsDb    = "SETTINGS_DB"
	EnvThumbnailsDir = "THUMBNAILS_DIR"
	EnvPollInterval  = "SCHEDULE_POLL_INTERVAL"
	EnvPreloadSeason = "PRELOAD_SEASON"
	EnvDebug         = "WEBSERVER_DEBUG"

	defaultPollInterval = 10 * time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	sm, err := settings.NewManager(os.Getenv(EnvSettingsDb))
	if err != nil {
		return err
	}
	defer sm.Close()

	prefs, err := sm.Preferences()
	if err != nil {
		return err
	}

	results := ergast.NewClient(os.Getenv(EnvErgastAPIURL))
	timing := openf1.NewClient(os.Getenv(EnvOpenF1APIURL))
	p := pipeline.New(results, timing, pipeline.Config{
		WetThreshold: prefs.WetThreshold,
		DefaultYear:  prefs.DefaultSeason,
	})

	exitChan := make(chan bool)
	defer close(exitChan)

	// alerts are optional, the dashboard works without a bot token
	if token := os.Getenv(EnvTelegramToken); token != "" {
		bot, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			return err
		}
		log.Printf("Authorized on account %s\n", bot.Self.UserName)
		nm := notification.NewManager(ctx, bot, sm)
		go nm.Start(exitChan)
	} else {
		log.Printf("%s not set, telegram alerts disabled\n", EnvTelegramToken)
	}

	pollInterval := defaultPollInterval
	if v := os.Getenv(EnvPollInterval); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		pollInterval = parsed
	}
	w := watcher.NewWatcher(ctx, results, prefs.DefaultSeason, pollInterval)
	go w.Start(exitChan)

	if os.Getenv(EnvPreloadSeason) == "true" {
		go func() {
			loaded, err := p.PreloadSeason(ctx, prefs.DefaultSeason)
			if err != nil {
				log.Printf("Error preloading season %d: %s\n", prefs.DefaultSeason, err.Error())
				return
			}
			log.Printf("Preloaded %d races of season %d\n", loaded, prefs.DefaultSeason)
		}()
	}

	thumbDir := os.Getenv(EnvThumbnailsDir)
	if thumbDir == "" {
		thumbDir = os.TempDir()
	}

	ws := webserver.NewManager(p, sm, thumbDir)
	if os.Getenv(EnvDebug) == "true" {
		ws.Debug()
	}
	ws.Serve()
	return nil
}
