package halfplane

import (
	"io"
	"log"
	"sync"
)

var (
	debugMu     sync.RWMutex
	debugLogger *log.Logger
)

// SetDebugLogger installs a debug logger that receives per-plane solver
// diagnostics. Pass nil to disable debug logging.
func SetDebugLogger(w io.Writer) {
	debugMu.Lock()
	defer debugMu.Unlock()
	if w == nil {
		debugLogger = nil
		return
	}
	debugLogger = log.New(w, "[halfplane] ", log.LstdFlags|log.Lmicroseconds)
}

// debugf logs formatted debug messages when a debug logger is configured.
func debugf(format string, args ...interface{}) {
	debugMu.RLock()
	l := debugLogger
	debugMu.RUnlock()
	if l != nil {
		l.Printf(format, args...)
	}
}
