package dma

import (
	"math/bits"
	"runtime"
	"time"
)

// gosched yields between two polls of a stream's status.
func gosched() {
	runtime.Gosched()
}

// deadline is the instant a MemoryToMemory wait gives up. The zero value
// never expires.
type deadline struct {
	at time.Time
}

func (dl deadline) expired() bool {
	return !dl.at.IsZero() && time.Now().After(dl.at)
}

// deadliner holds the timeout set with Controller.SetTimeout, stored as a
// power of two nanoseconds so it fits a byte. Zero means no timeout.
type deadliner struct {
	timeout uint8
}

func (ch deadliner) newDeadline() deadline {
	if ch.timeout == 0 {
		return deadline{}
	}
	return deadline{at: time.Now().Add(time.Duration(1) << ch.timeout)}
}

// setTimeout rounds timeout up to the next power of two nanoseconds. Zero or
// a negative value waits forever.
func (ch *deadliner) setTimeout(timeout time.Duration) {
	if timeout <= 0 {
		ch.timeout = 0
		return
	}
	shift := bits.Len64(uint64(timeout - 1))
	ch.timeout = uint8(min(max(shift, 1), 62))
}
