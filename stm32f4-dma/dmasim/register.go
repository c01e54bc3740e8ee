package dmasim

import "sync"

type registerKind uint8

const (
	kindPlain  registerKind = iota
	kindStatus              // read-only to software, set by the hardware model
	kindClear               // write 1 to clear bits of target, reads as zero
)

// Register is a simulated 32-bit hardware register. It implements
// dma.Register and records every value software writes to it.
type Register struct {
	mu     sync.Mutex
	kind   registerKind
	value  uint32
	writes []uint32

	// target is the status register cleared by a kindClear register.
	target *Register
	// changed runs after a software write, outside the lock.
	changed func(old, cur uint32)
}

// Get returns the current value.
func (r *Register) Get() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Set is a software write. Writes to status registers are recorded but
// ignored, writes to clear registers clear the written bits of their status
// register.
func (r *Register) Set(value uint32) {
	r.mu.Lock()
	r.writes = append(r.writes, value)
	old := r.value
	if r.kind == kindPlain {
		r.value = value
	}
	cur := r.value
	r.mu.Unlock()

	if r.kind == kindClear {
		r.target.clear(value)
	}
	if r.changed != nil {
		r.changed(old, cur)
	}
}

// Writes returns the values software wrote since the last ClearWrites.
func (r *Register) Writes() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint32(nil), r.writes...)
}

// ClearWrites forgets the recorded writes.
func (r *Register) ClearWrites() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = r.writes[:0]
}

func (r *Register) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

// poke is a hardware side store: not recorded, no hooks.
func (r *Register) poke(value uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value = value
}

func (r *Register) or(bits uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value |= bits
}

func (r *Register) clear(bits uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.value &^= bits
}
