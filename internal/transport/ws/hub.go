package ws

import (
	"encoding/json"
	"sync"

	"surveyhub/internal/log"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans live survey events out to the connections watching each survey.
// Survey owners and admins may watch; respondents never connect.
type Hub struct {
	// survey id -> watchers
	feeds map[string]map[*Connection]struct{}

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	stop       chan struct{}
}

// Connection represents a WebSocket connection
type Connection struct {
	SurveyID    string
	PrincipalID string
	Send        chan []byte
	Hub         *Hub
}

// BroadcastMessage is a message to broadcast. Close disconnects every
// watcher of the survey after earlier messages have been queued to them.
type BroadcastMessage struct {
	SurveyID string
	Message  *Message
	Close    bool
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		feeds:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		stop:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.feeds[conn.SurveyID] == nil {
				h.feeds[conn.SurveyID] = make(map[*Connection]struct{})
			}
			h.feeds[conn.SurveyID][conn] = struct{}{}
			h.mu.Unlock()
			log.Debugf("watcher %s joined survey %s", conn.PrincipalID, conn.SurveyID)

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			if msg.Close {
				h.mu.Lock()
				for conn := range h.feeds[msg.SurveyID] {
					h.remove(conn)
				}
				h.mu.Unlock()
				continue
			}

			data, err := json.Marshal(msg.Message)
			if err != nil {
				log.WithError(err).Error("encode live event")
				continue
			}
			h.mu.RLock()
			for conn := range h.feeds[msg.SurveyID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()

		case <-h.stop:
			h.mu.Lock()
			for _, conns := range h.feeds {
				for conn := range conns {
					h.remove(conn)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove drops conn and closes its send channel. Callers hold mu.
func (h *Hub) remove(conn *Connection) {
	conns, ok := h.feeds[conn.SurveyID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; !ok {
		return
	}
	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.feeds, conn.SurveyID)
	}
	log.Debugf("watcher %s left survey %s", conn.PrincipalID, conn.SurveyID)
}

// Register adds a connection. It reports false once the hub is closed.
func (h *Hub) Register(conn *Connection) bool {
	select {
	case h.register <- conn:
		return true
	case <-h.stop:
		return false
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.stop:
	}
}

// Watchers returns the number of connections watching a survey
func (h *Hub) Watchers(surveyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.feeds[surveyID])
}

// BroadcastToSurvey sends an event to everyone watching a survey (implements service.Broadcaster)
func (h *Hub) BroadcastToSurvey(surveyID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Errorf("encode %s payload", msgType)
		return
	}
	h.send(&BroadcastMessage{
		SurveyID: surveyID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	})
}

// DisconnectSurvey closes every connection watching a survey (implements service.Broadcaster)
func (h *Hub) DisconnectSurvey(surveyID string) {
	h.send(&BroadcastMessage{SurveyID: surveyID, Close: true})
}

func (h *Hub) send(msg *BroadcastMessage) {
	select {
	case h.broadcast <- msg:
	case <-h.stop:
	}
}

// Close stops the hub and closes every connection
func (h *Hub) Close() {
	close(h.stop)
}
