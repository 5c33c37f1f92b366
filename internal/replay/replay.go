// Package replay streams a recorded snapshot document to websocket clients at
// the document's own cadence.
package replay

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/pattty847/Sentinel/internal/document"
	"github.com/pattty847/Sentinel/internal/metrics"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Streamer replays a document's snapshots to websocket clients. Every client
// gets its own pass through the series from the beginning.
type Streamer struct {
	doc      document.Document
	interval time.Duration
	log      zerolog.Logger
}

// NewStreamer prepares a streamer for doc. Speed scales the recorded cadence,
// so 2 plays back twice as fast as real time; values at or below zero fall
// back to real time.
func NewStreamer(doc document.Document, speed float64, log zerolog.Logger) *Streamer {
	if speed <= 0 {
		speed = 1
	}
	interval := time.Duration(float64(doc.Metadata.IntervalMs) / speed * float64(time.Millisecond))
	if interval < time.Millisecond {
		interval = time.Millisecond
	}
	return &Streamer{
		doc:      doc,
		interval: interval,
		log:      log.With().Str("component", "replay").Logger(),
	}
}

// Handler upgrades each request and streams the document until it is
// exhausted or the client goes away.
func (s *Streamer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		s.stream(conn)
	})
}

func (s *Streamer) stream(conn *websocket.Conn) {
	defer conn.Close()

	log := s.log.With().Str("client", uuid.NewString()).Logger()
	log.Info().
		Int("snapshots", len(s.doc.Snapshots)).
		Dur("interval", s.interval).
		Msg("client connected")

	// The read pump only watches for the client closing the socket.
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	frames := time.NewTicker(s.interval)
	defer frames.Stop()
	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	sent := 0
	for sent < len(s.doc.Snapshots) {
		select {
		case <-closed:
			log.Info().Int("sent", sent).Msg("client disconnected")
			return
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Warn().Err(err).Int("sent", sent).Msg("ping failed")
				return
			}
		case <-frames.C:
			snap := s.doc.Snapshots[sent]
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(snap); err != nil {
				log.Warn().Err(err).Int("sent", sent).Msg("write failed")
				return
			}
			metrics.ReplayFramesTotal.WithLabelValues(snap.Symbol).Inc()
			sent++
		}
	}

	log.Info().Int("sent", sent).Msg("replay complete")
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"))
}
