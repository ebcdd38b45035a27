// Package debuglog writes JSON-lines debug events to a file when --debug is set.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "ponto-debug.log"

// Logger logs events as one JSON object per line.
type Logger struct {
	mu      sync.Mutex
	w       io.Writer
	closer  io.Closer
	enabled bool
	seq     int
	now     func() time.Time
}

// std is the global logger. Init and Close swap it while command goroutines may
// still be logging.
var std atomic.Pointer[Logger]

func init() {
	std.Store(&Logger{})
}

// Init enables the global logger writing to path. It is a no-op when enabled is false.
func Init(enabled bool, path string) error {
	if !enabled {
		std.Swap(&Logger{}).shutdown()
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	l := New(f)
	l.closer = f
	l.Log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	std.Swap(l).shutdown()
	return nil
}

// Close ends the global log and closes its file.
func Close() {
	std.Swap(&Logger{}).end()
}

// New returns an enabled logger writing to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w, enabled: true, now: time.Now}
}

// Enabled reports whether the logger writes anything.
func (l *Logger) Enabled() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled && l.w != nil
}

// end writes DEBUG_END and shuts the logger down in one step, so it is the last entry.
func (l *Logger) end() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.w == nil {
		return
	}
	l.write("DEBUG_END", map[string]any{
		"time": time.Now().Format(time.RFC3339),
	})
	l.shutdownLocked()
}

// shutdown disables the logger and closes its file. Later Log calls are dropped.
func (l *Logger) shutdown() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shutdownLocked()
}

func (l *Logger) shutdownLocked() {
	l.enabled = false
	if l.closer != nil {
		_ = l.closer.Close()
		l.closer = nil
	}
}

// Log writes a structured log entry.
func (l *Logger) Log(event string, data map[string]any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || l.w == nil {
		return
	}
	l.write(event, data)
}

// write appends one entry. l.mu must be held.
func (l *Logger) write(event string, data map[string]any) {
	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    l.now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.w, "%s\n", b)
}

// LogError logs an error with the operation it came from.
func (l *Logger) LogError(context string, err error) {
	if err == nil {
		return
	}
	l.Log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// Log writes an entry to the global logger.
func Log(event string, data map[string]any) {
	std.Load().Log(event, data)
}

// LogError writes an error to the global logger.
func LogError(context string, err error) {
	std.Load().LogError(context, err)
}
