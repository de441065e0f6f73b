package landing

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/scene"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errClosing = errors.New("landing is closing")

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type    string         `json:"type"` // "hello", "frame" or "action"
	Session string         `json:"session,omitempty"`
	Version string         `json:"version,omitempty"`
	FPS     int            `json:"fps,omitempty"`
	Frame   *scene.Frame   `json:"frame,omitempty"`
	Action  *actionMessage `json:"action,omitempty"`
}

// actionMessage flattens a scene.Action for the page.
type actionMessage struct {
	Kind       string `json:"kind"` // "open_url", "show_panel" or "navigate"
	URL        string `json:"url,omitempty"`
	NewContext bool   `json:"new_context,omitempty"`
	Title      string `json:"title,omitempty"`
	Body       string `json:"body,omitempty"`
	Path       string `json:"path,omitempty"`
}

func encodeAction(a scene.Action) *actionMessage {
	switch a := a.(type) {
	case scene.OpenURL:
		return &actionMessage{Kind: "open_url", URL: a.URL, NewContext: a.NewContext}
	case scene.ShowPanel:
		return &actionMessage{Kind: "show_panel", Title: a.Title, Body: a.Body}
	case scene.Navigate:
		return &actionMessage{Kind: "navigate", Path: a.Path}
	default:
		return nil
	}
}

// viewportFromQuery applies the optional w, h and dpr query parameters.
func viewportFromQuery(cfg scene.Config, r *http.Request) scene.Config {
	q := r.URL.Query()
	if w, err := strconv.ParseFloat(q.Get("w"), 64); err == nil && w > 0 && w <= 16384 {
		cfg.Width = w
	}
	if h, err := strconv.ParseFloat(q.Get("h"), 64); err == nil && h > 0 && h <= 16384 {
		cfg.Height = h
	}
	if d, err := strconv.ParseFloat(q.Get("dpr"), 64); err == nil && d > 0 && d <= 8 {
		cfg.DPR = d
	}
	return cfg
}

func (l *Landing) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log := l.log.With(zap.String("session", id))

	s, err := scene.New(viewportFromQuery(l.cfg, r), l.labels, log)
	if err != nil {
		log.Error("creating scene", zap.Error(err))
		return
	}

	write := func(msg serverMessage) error {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(msg)
	}
	runner := scene.NewRunner(s,
		func(f scene.Frame) error {
			return write(serverMessage{Type: "frame", Frame: &f})
		},
		func(a scene.Action) error {
			msg := encodeAction(a)
			if msg == nil {
				return nil
			}
			return write(serverMessage{Type: "action", Action: msg})
		},
	)
	if !l.register(id, runner) {
		runner.Close()
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, errClosing.Error()),
			time.Now().Add(writeWait))
		return
	}
	defer l.unregister(id)
	defer runner.Close()

	if err := write(serverMessage{Type: "hello", Session: id, Version: l.Version, FPS: l.cfg.FPS}); err != nil {
		log.Debug("websocket hello", zap.Error(err))
		return
	}
	runner.Start()
	log.Debug("scene session opened")

	// Unblock the read loop once the runner stops on its own, for example
	// after a failed write or Landing.Close.
	go func() {
		<-runner.Done()
		conn.SetReadDeadline(time.Now())
	}()

	for {
		var ev scene.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read", zap.Error(err))
			}
			break
		}
		if !runner.Send(ev) {
			log.Debug("dropping event, queue full or runner stopped", zap.String("type", string(ev.Type)))
		}
	}

	if err := runner.Err(); err != nil {
		log.Debug("scene session ended", zap.Error(err))
	} else {
		log.Debug("scene session closed")
	}
}
