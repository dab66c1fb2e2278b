package log

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// TailHook is a logrus hook keeping a bounded ring of formatted log lines.
type TailHook struct {
	mu    sync.Mutex
	limit int
	lines []string
}

func NewTailHook(limit int) *TailHook {
	return &TailHook{
		limit: limit,
		lines: make([]string, 0, limit),
	}
}

func (h *TailHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *TailHook) Fire(e *logrus.Entry) error {
	line := fmt.Sprintf("%s [%s] %s", e.Time.Format("15:04:05"), e.Level, e.Message)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lines = append(h.lines, line)
	if len(h.lines) > h.limit {
		h.lines = h.lines[len(h.lines)-h.limit:]
	}

	return nil
}

// Lines returns a copy of the captured tail, oldest first.
func (h *TailHook) Lines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.lines))
	copy(out, h.lines)
	return out
}
