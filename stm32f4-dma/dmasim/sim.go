// Package dmasim simulates the DMA controllers of an STM32F4 so package dma
// can run on a host.
//
// The simulator provides the register blocks and the clock, reset and
// interrupt collaborators of a dma.Bus. Tests raise hardware conditions with
// Raise or Pend, or let the transfer engine move data between memory mapped
// with Map and Addr. Interrupts are level triggered: while a stream's
// interrupt line is enabled and one of its enabled conditions is pending,
// the dispatcher runs again, synchronously on the caller's goroutine.
package dmasim

import (
	"sync"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
)

// Sim is a pair of simulated DMA controllers.
type Sim struct {
	ctrls  [dma.NumControllers]ControllerRegs
	driver *dma.Driver

	mu           sync.Mutex
	autoComplete bool
	clock        [dma.NumControllers]bool
	resets       [dma.NumControllers]int
	lines        [dma.NumControllers][dma.StreamsPerController]bool
	mem          memory
}

// New returns a simulator with all registers at their reset values and a
// driver bound to it.
func New() *Sim {
	s := &Sim{mem: memory{next: ramBase}}
	for ci := range s.ctrls {
		c := &s.ctrls[ci]
		c.LISR.kind = kindStatus
		c.HISR.kind = kindStatus
		c.LIFCR.kind = kindClear
		c.LIFCR.target = &c.LISR
		c.HIFCR.kind = kindClear
		c.HIFCR.target = &c.HISR
		for si := range c.Streams {
			id, stream := dma.ControllerID(ci), uint8(si)
			c.Streams[si].CR.changed = func(old, cur uint32) {
				if old&crEN == 0 && cur&crEN != 0 {
					s.enabled(id, stream)
				}
			}
		}
		c.reset()
	}
	s.driver = dma.New(s.Bus())
	return s
}

// Bus returns a bus backed by the simulator.
func (s *Sim) Bus() *dma.Bus {
	bus := &dma.Bus{Clock: s, Reset: s, IRQ: s}
	for ci := range s.ctrls {
		c := &s.ctrls[ci]
		regs := &bus.Controllers[ci]
		regs.LISR, regs.HISR, regs.LIFCR, regs.HIFCR = &c.LISR, &c.HISR, &c.LIFCR, &c.HIFCR
		for si := range c.Streams {
			st := &c.Streams[si]
			regs.Streams[si] = dma.StreamRegisters{
				CR:   &st.CR,
				NDTR: &st.NDTR,
				PAR:  &st.PAR,
				M0AR: &st.M0AR,
				M1AR: &st.M1AR,
				FCR:  &st.FCR,
			}
		}
	}
	return bus
}

// Driver returns the driver whose interrupts the simulator dispatches.
func (s *Sim) Driver() *dma.Driver { return s.driver }

// Controller returns the registers of controller c.
func (s *Sim) Controller(c dma.ControllerID) *ControllerRegs { return &s.ctrls[c] }

// Stream returns the registers of a stream.
func (s *Sim) Stream(c dma.ControllerID, stream uint8) *StreamRegs {
	return &s.ctrls[c].Streams[stream]
}

// SetAutoComplete makes the engine run a transfer as soon as software sets a
// stream's enable bit.
func (s *Sim) SetAutoComplete(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoComplete = on
}

// WriteCount returns the number of software writes to any register of
// either controller since the last ClearWrites.
func (s *Sim) WriteCount() (n int) {
	for ci := range s.ctrls {
		for _, r := range s.ctrls[ci].all() {
			n += r.writeCount()
		}
	}
	return n
}

// ClearWrites forgets the recorded writes of all registers.
func (s *Sim) ClearWrites() {
	for ci := range s.ctrls {
		for _, r := range s.ctrls[ci].all() {
			r.ClearWrites()
		}
	}
}

// Pend sets the status bits of the conditions in f without interrupting.
func (s *Sim) Pend(c dma.ControllerID, stream uint8, f dma.Flag) {
	bits, _ := StatusBits(stream, f)
	s.ctrls[c].status(stream).or(bits)
}

// Raise sets the status bits of the conditions in f and interrupts if the
// stream's line and one of the matching enable bits are set.
func (s *Sim) Raise(c dma.ControllerID, stream uint8, f dma.Flag) {
	s.Pend(c, stream, f)
	s.service(c, stream)
}

// Interrupt enters the stream's interrupt handler once, regardless of line
// and enable bits.
func (s *Sim) Interrupt(c dma.ControllerID, stream uint8) {
	s.driver.Dispatch(s.driver.Stream(c, stream).IRQ())
}

// Pending returns the status field of a stream, shifted down to bit 0.
func (s *Sim) Pending(c dma.ControllerID, stream uint8) uint32 {
	return s.ctrls[c].status(stream).Get() >> fieldShift[stream%4] & FieldMask
}

// service models the level triggered interrupt line of a stream.
func (s *Sim) service(c dma.ControllerID, stream uint8) {
	// The dispatcher acknowledges one condition per run, so this ends after
	// at most five runs.
	for i := 0; i < 8; i++ {
		if !s.LineEnabled(c, stream) || s.ctrls[c].enabledPending(stream) == 0 {
			return
		}
		s.Interrupt(c, stream)
	}
}

func (s *Sim) enabled(c dma.ControllerID, stream uint8) {
	s.mu.Lock()
	auto := s.autoComplete
	s.mu.Unlock()
	if auto {
		s.Complete(c, stream)
	}
}

// Complete runs the transfer an enabled stream is configured for: it moves
// NDTR items, raises half transfer and transfer complete and, unless the
// stream is circular, clears NDTR and the enable bit. Accessing unmapped
// memory raises transfer error and disables the stream instead. Streams that
// are disabled or have NDTR zero are left alone.
func (s *Sim) Complete(c dma.ControllerID, stream uint8) {
	st := &s.ctrls[c].Streams[stream]
	cr := st.CR.Get()
	n := st.NDTR.Get() & 0xffff
	if cr&crEN == 0 || n == 0 {
		return
	}
	if err := s.mem.move(cr, st.PAR.Get(), st.M0AR.Get(), n); err != nil {
		st.CR.poke(st.CR.Get() &^ crEN)
		s.Raise(c, stream, dma.FlagTransferError)
		return
	}
	if cr&crCIRC == 0 {
		st.NDTR.poke(0)
		st.CR.poke(st.CR.Get() &^ crEN)
	}
	s.Raise(c, stream, dma.FlagHalfTransfer|dma.FlagTransferComplete)
}

// EnableClock implements dma.ClockGate.
func (s *Sim) EnableClock(c dma.ControllerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock[c] = true
}

// DisableClock implements dma.ClockGate.
func (s *Sim) DisableClock(c dma.ControllerID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock[c] = false
}

// ClockEnabled reports whether the clock of controller c is on.
func (s *Sim) ClockEnabled(c dma.ControllerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock[c]
}

// AssertReset implements dma.ResetLine. All registers of the controller go
// back to their reset values and interrupt lines stay as they are.
func (s *Sim) AssertReset(c dma.ControllerID) {
	s.mu.Lock()
	s.resets[c]++
	s.mu.Unlock()
	s.ctrls[c].reset()
}

// Resets returns how often the reset line of controller c was pulsed.
func (s *Sim) Resets(c dma.ControllerID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resets[c]
}

// EnableInterruptLine implements dma.InterruptRouter.
func (s *Sim) EnableInterruptLine(c dma.ControllerID, stream uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[c][stream] = true
}

// LineEnabled reports whether the interrupt line of a stream is enabled.
func (s *Sim) LineEnabled(c dma.ControllerID, stream uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[c][stream]
}
