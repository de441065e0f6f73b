package landing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nodescape/internal/render"
)

const (
	maxSnapshotSide  = 4096
	defaultSnapTicks = 120
	maxSnapTicks     = 3600
)

func (l *Landing) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	cfg := l.cfg
	q := r.URL.Query()

	ticks := defaultSnapTicks
	if v := q.Get("ticks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSnapTicks {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("ticks must be between 1 and %d", maxSnapTicks))
			return
		}
		ticks = n
	}
	for _, dim := range []struct {
		key string
		dst *float64
	}{{"w", &cfg.Width}, {"h", &cfg.Height}} {
		v := q.Get(dim.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSnapshotSide {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("%s must be between 1 and %d", dim.key, maxSnapshotSide))
			return
		}
		*dim.dst = float64(n)
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "seed must be an integer")
			return
		}
		cfg.Seed = n
	}
	cfg.DPR = 1

	var buf bytes.Buffer
	if err := render.Snapshot(r.Context(), cfg, l.labels, ticks, &buf, l.log); err != nil {
		l.log.Error("rendering snapshot", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "rendering snapshot failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
