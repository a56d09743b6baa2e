// Package socket terminates room websockets: it authenticates the
// session cookie, attaches the connection to a room, and pumps frames
// between the connection and the room's outbound queue.
package socket

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/minseo-kang/wordgrid/game/message"
	"github.com/minseo-kang/wordgrid/server/auth"
	"github.com/minseo-kang/wordgrid/server/log"
	"github.com/minseo-kang/wordgrid/server/room"
)

type (
	// Config contains the properties for creating the websocket handler.
	Config struct {
		// Debug logs every frame received.
		Debug bool
		// Log is used to log errors and other information.
		Log log.Logger
		// Auth decodes session cookies into user uuids.
		Auth auth.Tokenizer
		// Rooms is the registry connections are multiplexed onto.
		Rooms *room.Registry
		// ReadWait is how long to wait between pongs before assuming the
		// peer is gone.
		ReadWait time.Duration
		// WriteWait bounds each frame write.
		WriteWait time.Duration
		// PingPeriod is the interval between pings.  Must be less than
		// ReadWait.
		PingPeriod time.Duration
	}

	// Handler upgrades requests at the websocket endpoint.
	Handler struct {
		Config
		upgrader *websocket.Upgrader
	}
)

const (
	defaultReadWait   = 60 * time.Second
	defaultWriteWait  = 10 * time.Second
	defaultPingPeriod = 50 * time.Second

	// sessionCookie names the cookie carrying the signed session token.
	sessionCookie = "session_id"
)

// NewHandler validates the config and creates the websocket handler.
func (cfg Config) NewHandler() (*Handler, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("creating websocket handler: validation: %w", err)
	}
	if cfg.ReadWait <= 0 {
		cfg.ReadWait = defaultReadWait
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = defaultWriteWait
	}
	if cfg.PingPeriod <= 0 {
		cfg.PingPeriod = defaultPingPeriod
	}
	if cfg.PingPeriod >= cfg.ReadWait {
		return nil, fmt.Errorf("ping period must be less than read wait")
	}
	h := Handler{
		Config: cfg,
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	return &h, nil
}

// validate ensures the configuration has no errors.
func (cfg Config) validate() error {
	switch {
	case cfg.Log == nil:
		return fmt.Errorf("log required")
	case cfg.Auth == nil:
		return fmt.Errorf("tokenizer required")
	case cfg.Rooms == nil:
		return fmt.Errorf("room registry required")
	}
	return nil
}

// ServeHTTP joins the request's room and serves the connection until
// either side closes it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("room")
	if len(code) == 0 {
		http.Error(w, "room query parameter required", http.StatusBadRequest)
		return
	}
	name := r.URL.Query().Get("name")
	color := r.URL.Query().Get("color")
	userID := h.userID(r)
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Printf("upgrading connection: %v", err)
		return
	}
	rm := h.Rooms.GetOrCreate(code)
	p, err := rm.Join(userID, name, color)
	if err != nil {
		h.writeError(conn, err)
		conn.Close()
		return
	}
	done := make(chan struct{})
	go h.writePump(conn, p.Sink(), done)
	h.readPump(conn, rm, userID)
	rm.Detach(p)
	<-done
	conn.Close()
}

// userID resolves the player identity: the session cookie when it
// decodes, a fresh guest uuid otherwise.
func (h *Handler) userID(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return uuid.NewString()
	}
	id, err := h.Auth.Decode(c.Value)
	if err != nil {
		if h.Debug {
			h.Log.Printf("session cookie rejected, joining as guest: %v", err)
		}
		return uuid.NewString()
	}
	return id
}

// writePump serializes all writes on the connection: queued room frames
// and the keepalive pings.  It runs until the room closes the sink.
func (h *Handler) writePump(conn *websocket.Conn, sink <-chan message.Message, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(h.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case m, ok := <-sink:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(h.WriteWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(h.WriteWait))
			if err := conn.WriteJSON(m); err != nil {
				h.Log.Printf("writing frame: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(h.WriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes frames and applies them to the room until the
// connection fails or the client breaks protocol.
func (h *Handler) readPump(conn *websocket.Conn, rm *room.Room, userID string) {
	conn.SetReadDeadline(time.Now().Add(h.ReadWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(h.ReadWait))
		return nil
	})
	for {
		var m message.Message
		if err := conn.ReadJSON(&m); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.Log.Printf("reading frame: %v", err)
			}
			return
		}
		if h.Debug {
			h.Log.Printf("room %v: %v sent %v", rm.Code(), userID, m.Type)
		}
		if !m.Type.FromClient() {
			rm.SendError(userID, fmt.Sprintf("unsupported message type: %v", m.Type))
			return
		}
		if err := h.handle(rm, userID, m); err != nil {
			rm.SendError(userID, err.Error())
		}
	}
}

// handle applies one client frame to the room.
func (h *Handler) handle(rm *room.Room, userID string, m message.Message) error {
	switch m.Type {
	case message.StartGame:
		return rm.StartGame(userID)
	case message.Place:
		return rm.PlaceTile(userID, m.X, m.Y, m.Letter, m.Color, m.HandIndex)
	case message.UpdateSettings:
		if m.Settings == nil {
			return fmt.Errorf("settings required")
		}
		return rm.UpdateSettings(userID, *m.Settings)
	case message.Draw:
		return rm.DrawTiles(userID, m.Count)
	case message.StartTimer:
		return rm.StartTimer(userID, m.Duration)
	case message.RerollHand:
		return rm.Reroll(userID)
	case message.DestroyTile:
		slot := -1
		if m.HandIndex != nil {
			slot = *m.HandIndex
		}
		return rm.DestroyTile(userID, slot)
	case message.Chat:
		rm.Chat(userID, m.Message)
		return nil
	case message.EndGame:
		return rm.EndGame(userID)
	}
	return fmt.Errorf("unsupported message type: %v", m.Type)
}

// writeError reports a join failure on a connection that never attached
// to a room.
func (h *Handler) writeError(conn *websocket.Conn, err error) {
	conn.SetWriteDeadline(time.Now().Add(h.WriteWait))
	conn.WriteJSON(message.Message{
		Type:    message.Error,
		Message: err.Error(),
	})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()))
}
