package log

import (
	"fmt"
	"sync"
	"time"
)

// ChanLog sends records into a channel, so they can be displayed by UI.
// Records are also passed to the next logger (e.g. a log file).
// If nobody reads the channel, records are dropped.
type ChanLog struct {
	records chan Record
	next    Logger
	mu      sync.Mutex
	closed  bool
}

func NewChanLog(size int, next Logger) *ChanLog {
	if next == nil {
		next = NewEmptyLog()
	}
	return &ChanLog{records: make(chan Record, size), next: next}
}

// Records returns the channel with log records
func (l *ChanLog) Records() <-chan Record {
	return l.records
}

func (l *ChanLog) send(level Level, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	r := Record{Level: level, Time: time.Now(), Text: fmt.Sprintf(format, v...)}
	select {
	case l.records <- r:
	default:
	}
}

func (l *ChanLog) Error(format string, v ...any) {
	l.send(ErrorLevel, format, v...)
	l.next.Error(format, v...)
}

func (l *ChanLog) Warning(format string, v ...any) {
	l.send(WarningLevel, format, v...)
	l.next.Warning(format, v...)
}

func (l *ChanLog) Info(format string, v ...any) {
	l.send(InfoLevel, format, v...)
	l.next.Info(format, v...)
}

func (l *ChanLog) Close() error {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.records)
	}
	l.mu.Unlock()
	return l.next.Close()
}
