// Package landing serves the animated landing page and streams a private
// scene to every connected browser.
package landing

import (
	_ "embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/logging"
	"github.com/ziadkadry99/nodescape/internal/scene"
)

//go:embed index.html
var indexSource string

var indexTmpl = template.Must(template.New("index").Parse(indexSource))

// Landing owns the live scene sessions.
type Landing struct {
	// Version is sent to every socket in its hello message.
	Version string

	cfg    scene.Config
	labels []scene.Label
	title  string
	log    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*scene.Runner
	closed   bool
	wg       sync.WaitGroup
}

// New creates the landing page handlers. Every socket gets a scene built
// from cfg carrying labels.
func New(cfg scene.Config, labels []scene.Label, siteTitle string, logger *zap.Logger) *Landing {
	logger = logging.OrNop(logger)
	return &Landing{
		cfg:      cfg,
		labels:   labels,
		title:    siteTitle,
		log:      logger,
		sessions: make(map[string]*scene.Runner),
	}
}

// RegisterRoutes mounts the page, the scene socket and the snapshot endpoint.
func (l *Landing) RegisterRoutes(r chi.Router) {
	r.Get("/", l.ServeIndex)
	r.Get("/ws/scene", l.handleWebSocket)
	r.Get("/api/scene/snapshot.png", l.handleSnapshot)
}

// ServeIndex serves the embedded landing page.
func (l *Landing) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Title string }{l.title}); err != nil {
		l.log.Error("rendering landing page", zap.Error(err))
	}
}

// Active returns the number of open scene sessions.
func (l *Landing) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

func (l *Landing) register(id string, r *scene.Runner) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.sessions[id] = r
	l.wg.Add(1)
	return true
}

func (l *Landing) unregister(id string) {
	l.mu.Lock()
	_, ok := l.sessions[id]
	delete(l.sessions, id)
	l.mu.Unlock()
	if ok {
		l.wg.Done()
	}
}

// Close stops every session and waits for their handlers to return. New
// sockets are refused afterwards.
func (l *Landing) Close() {
	l.mu.Lock()
	l.closed = true
	runners := make([]*scene.Runner, 0, len(l.sessions))
	for _, r := range l.sessions {
		runners = append(runners, r)
	}
	l.mu.Unlock()

	for _, r := range runners {
		r.Close()
	}
	l.wg.Wait()
}
