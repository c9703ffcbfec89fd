package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveMessage is pushed to browsers whenever the loading flag changes.
type liveMessage struct {
	Loading bool `json:"loading"`
}

// handleLive streams the site loading flag. The current value is sent on
// connect, then every change.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Holds only the latest value for a slow client.
	updates := make(chan bool, 1)
	unsubscribe := s.global.Subscribe(func(loading bool) {
		for {
			select {
			case updates <- loading:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	if err := conn.WriteJSON(liveMessage{Loading: s.global.Loading()}); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("server: websocket read: %v", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case loading := <-updates:
			if err := conn.WriteJSON(liveMessage{Loading: loading}); err != nil {
				log.Printf("server: websocket write: %v", err)
				return
			}
		case <-closed:
			return
		case <-r.Context().Done():
			return
		}
	}
}
