package ws

import (
	"net/http"
	"time"

	"surveyhub/internal/apperr"
	"surveyhub/internal/log"
	"surveyhub/internal/service"
	"surveyhub/internal/transport/rest/envelope"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the token authorizes the feed, so any origin may open it
	CheckOrigin: func(*http.Request) bool { return true },
}

// Handler upgrades survey feed requests
type Handler struct {
	hub       *Hub
	tokens    *service.TokenService
	surveySvc *service.SurveyService
}

func NewHandler(hub *Hub, tokens *service.TokenService, surveySvc *service.SurveyService) *Handler {
	return &Handler{hub: hub, tokens: tokens, surveySvc: surveySvc}
}

// SurveyFeed handles GET /v1/ws/surveys/{id}?token=. Browsers cannot set
// headers on a websocket handshake, so the bearer token travels in the query.
// Failures before the upgrade are answered with the usual JSON envelope.
func (h *Handler) SurveyFeed(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["id"]

	token := r.URL.Query().Get("token")
	if token == "" {
		envelope.Error(w, r, apperr.Unauthenticated("missing token"))
		return
	}
	p, err := h.tokens.Verify(r.Context(), token)
	if err != nil {
		envelope.Error(w, r, err)
		return
	}
	if err := h.surveySvc.Authorize(r.Context(), p, surveyID); err != nil {
		envelope.Error(w, r, err)
		return
	}

	socket, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		log.WithError(err).Warnf("websocket upgrade for survey %s", surveyID)
		return
	}

	f := &feed{
		socket: socket,
		conn: &Connection{
			SurveyID:    surveyID,
			PrincipalID: p.ID,
			Send:        make(chan []byte, sendBuffer),
			Hub:         h.hub,
		},
	}
	if !h.hub.Register(f.conn) {
		socket.Close()
		return
	}
	go f.write()
	go f.read()
}

// feed pairs a hub connection with its socket. read owns unregistering,
// write owns the socket once the hub closes Send.
type feed struct {
	socket *websocket.Conn
	conn   *Connection
}

// read discards client frames; it only keeps the pong deadline moving and
// notices when the client goes away.
func (f *feed) read() {
	defer func() {
		f.conn.Hub.Unregister(f.conn)
		f.socket.Close()
	}()

	f.socket.SetReadLimit(maxMessageSize)
	f.socket.SetReadDeadline(time.Now().Add(pongWait))
	f.socket.SetPongHandler(func(string) error {
		return f.socket.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, _, err := f.socket.ReadMessage()
		if err == nil {
			continue
		}
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
			log.WithFields(log.Fields{
				"survey":    f.conn.SurveyID,
				"principal": f.conn.PrincipalID,
			}).WithError(err).Warn("survey feed closed unexpectedly")
		}
		return
	}
}

func (f *feed) write() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		f.socket.Close()
	}()

	for {
		select {
		case event, ok := <-f.conn.Send:
			f.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub dropped us, e.g. the survey was deleted
				f.socket.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "feed closed"))
				return
			}
			if err := f.socket.WriteMessage(websocket.TextMessage, event); err != nil {
				return
			}

		case <-ticker.C:
			f.socket.SetWriteDeadline(time.Now().Add(writeWait))
			if err := f.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
