package dma

import (
	"io"
	"log/slog"
	"sync"
)

var (
	logMu sync.RWMutex
	log   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// SetLogger replaces the logger used for configuration and transfer events.
// The default logger discards everything. Interrupt handlers never log.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logMu.Lock()
	defer logMu.Unlock()
	log = l
}

func logger() *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return log
}
