package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// RawLogger records raw build-tool traffic: the exact command lines run and
// the exact bytes each stream produced.
type RawLogger interface {
	Command(argv []string)
	Output(stream string, data []byte)
}

// rawLogger implements RawLogger with thread-safe log.
type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a new RawLogger. If writer is nil, returns a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

// Command emits the command line about to be run, shell-style.
func (r *rawLogger) Command(argv []string) {
	if r.w == nil {
		return
	}
	line := fmt.Sprintf("%s $ %s\n",
		time.Now().Format("2006/01/02 15:04:05"),
		strings.Join(argv, " "))

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}

// Output emits the verbatim bytes a stream produced, framed with a header so
// stdout and stderr stay distinguishable.
func (r *rawLogger) Output(stream string, data []byte) {
	if len(data) == 0 {
		return
	}
	if r.w == nil {
		return
	}

	header := fmt.Sprintf("--- %s, %d bytes ---\n", stream, len(data))

	r.mu.Lock()
	_, _ = r.w.Write([]byte(header))
	_, _ = r.w.Write(data)
	if data[len(data)-1] != '\n' {
		_, _ = io.WriteString(r.w, "\n")
	}
	r.mu.Unlock()
}
