package webserver

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"f1strategydash/pkg/caster"
	"f1strategydash/pkg/pubsub"
)

var upgrader = websocket.Upgrader{} // use default options

// RefreshMessage is the wire format in both directions: the server pushes
// {"event":"refresh"} frames, the client may send {"event":"watch"} to
// narrow the pushes to one race.
type RefreshMessage struct {
	Event string `json:"event"`
	Race  string `json:"race"`
}

var refreshCaster = caster.JSONChannelCaster[RefreshMessage]{}

// wsHandler pushes a refresh message to the client whenever the watcher
// announces a race. The connection lives until the client goes away.
func (m *Manager) wsHandler(w http.ResponseWriter, r *http.Request) {
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %s\n", err.Error())
		return
	}
	defer c.Close()

	refreshChan := pubsub.RefreshPubSub.Subscribe(pubsub.TopicRefresh)
	defer pubsub.RefreshPubSub.Unsubscribe(pubsub.TopicRefresh, refreshChan)

	done := make(chan struct{})
	watch := make(chan string, 1)
	go func() {
		defer close(done)
		for {
			_, data, err := c.ReadMessage()
			if err != nil {
				return
			}
			msg, err := refreshCaster.From(string(data))
			if err != nil || msg.Event != "watch" {
				continue
			}
			select {
			case watch <- msg.Race:
			default:
			}
		}
	}()

	raceFilter := ""
	for {
		select {
		case <-done:
			return
		case raceFilter = <-watch:
		case race := <-refreshChan:
			if raceFilter != "" && race != raceFilter {
				continue
			}
			payload, err := refreshCaster.To(RefreshMessage{Event: "refresh", Race: race})
			if err != nil {
				log.Printf("error encoding refresh message: %s\n", err.Error())
				continue
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				return
			}
		}
	}
}
