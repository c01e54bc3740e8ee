package dma

import (
	"strings"
	"sync/atomic"
)

// Flag is a set of stream status conditions. The same taxonomy is used for
// latched status and for interrupt enable masks.
type Flag uint8

const (
	FlagTransferComplete Flag = 1 << iota
	FlagHalfTransfer
	FlagTransferError
	FlagDirectModeError
	FlagFifoError

	FlagNone Flag = 0
	FlagAll       = FlagTransferComplete | FlagHalfTransfer | FlagTransferError | FlagDirectModeError | FlagFifoError
	// FlagErrors are the fault conditions.
	FlagErrors = FlagTransferError | FlagDirectModeError | FlagFifoError
)

var flagNames = [...]string{"tc", "ht", "te", "dme", "fe"}

func (f Flag) String() string {
	if f&FlagAll == 0 {
		return "none"
	}
	var names []string
	for i, name := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// Err returns the error for the highest priority fault in f, or nil if f
// holds no fault.
func (f Flag) Err() error {
	switch {
	case f&FlagFifoError != 0:
		return ErrFifoError
	case f&FlagDirectModeError != 0:
		return ErrDirectModeError
	case f&FlagTransferError != 0:
		return ErrTransferError
	}
	return nil
}

// StatusFlags is a snapshot of the latched status of one stream.
type StatusFlags struct {
	TransferComplete     bool
	HalfTransferComplete bool
	TransferError        bool
	DirectModeError      bool
	FifoError            bool
}

func statusFromFlag(f Flag) StatusFlags {
	return StatusFlags{
		TransferComplete:     f&FlagTransferComplete != 0,
		HalfTransferComplete: f&FlagHalfTransfer != 0,
		TransferError:        f&FlagTransferError != 0,
		DirectModeError:      f&FlagDirectModeError != 0,
		FifoError:            f&FlagFifoError != 0,
	}
}

// Flag returns the snapshot as a Flag set.
func (s StatusFlags) Flag() (f Flag) {
	if s.TransferComplete {
		f |= FlagTransferComplete
	}
	if s.HalfTransferComplete {
		f |= FlagHalfTransfer
	}
	if s.TransferError {
		f |= FlagTransferError
	}
	if s.DirectModeError {
		f |= FlagDirectModeError
	}
	if s.FifoError {
		f |= FlagFifoError
	}
	return f
}

// FlagStore holds the latched status of every stream of both controllers.
//
// Flags are written by the interrupt dispatcher and read or cleared by
// client code. Each stream's flags are a single atomic word, so a snapshot
// is consistent as a group. A Reset racing a dispatcher latch either keeps
// or drops that latch as a whole.
type FlagStore struct {
	words [NumControllers][StreamsPerController]atomic.Uint32
}

// Get returns a snapshot of the latched status of a stream.
func (fs *FlagStore) Get(c ControllerID, stream uint8) StatusFlags {
	return statusFromFlag(fs.Load(c, stream))
}

// Load returns the latched status of a stream as a Flag set.
func (fs *FlagStore) Load(c ControllerID, stream uint8) Flag {
	return Flag(fs.word(c, stream).Load())
}

// Reset clears all latched flags of a stream. It does not touch hardware.
func (fs *FlagStore) Reset(c ControllerID, stream uint8) {
	fs.word(c, stream).Store(0)
}

// latch sets f for a stream. Flags stay set until Reset.
//
//go:nosplit
func (fs *FlagStore) latch(c ControllerID, stream uint8, f Flag) {
	w := fs.word(c, stream)
	for {
		old := w.Load()
		if w.CompareAndSwap(old, old|uint32(f)) {
			return
		}
	}
}

func (fs *FlagStore) word(c ControllerID, stream uint8) *atomic.Uint32 {
	if c >= NumControllers {
		panic(badController)
	}
	if stream >= StreamsPerController {
		panic(badStreamIndex)
	}
	return &fs.words[c][stream]
}
