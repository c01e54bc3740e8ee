// Package dma drives the DMA controllers of the STM32F4 family.
//
// Each of the two controllers owns eight streams and each stream selects one
// of eight request channels. A stream is configured with Stream.Configure,
// given its addresses with Stream.SetTarget and started with Stream.Arm.
// Completion and error conditions signaled by the hardware are latched per
// stream in a FlagStore by the interrupt dispatcher and can be polled with
// Stream.Flags or waited for with Stream.Wait.
//
// The register blocks and the clock, reset and interrupt collaborators are
// supplied through a Bus, so the package runs against real hardware (see
// Default on stm32f4 targets) as well as against the simulator in package
// dmasim.
package dma

import (
	"errors"
	"sync"
)

// ControllerID selects one of the two DMA controllers.
type ControllerID uint8

const (
	DMA1 ControllerID = iota
	DMA2
)

func (c ControllerID) String() string {
	switch c {
	case DMA1:
		return "DMA1"
	case DMA2:
		return "DMA2"
	}
	return "DMA?"
}

const (
	NumControllers       = 2
	StreamsPerController = 8
	ChannelsPerStream    = 8

	// MaxCount is the largest number of data items of a single transfer.
	MaxCount = 0xffff
)

// DMA errors.
var (
	ErrInvalidCircularMode = errors.New("dma: invalid circular mode")
	ErrStreamBusy          = errors.New("dma: stream busy")
	ErrTimeout             = errors.New("dma: timeout")
	ErrTransferError       = errors.New("dma: transfer error")
	ErrDirectModeError     = errors.New("dma: direct mode error")
	ErrFifoError           = errors.New("dma: fifo error")
)

const (
	badController         = "invalid DMA controller"
	badStreamIndex        = "invalid DMA stream index"
	badChannel            = "invalid DMA channel"
	badDirection          = "invalid DMA transfer direction"
	badDataSize           = "invalid DMA data size"
	badPriority           = "invalid DMA stream priority"
	badFlowControl        = "invalid DMA flow control"
	badReservedController = "memory to memory transfers run on DMA2 only"
	badBus                = "incomplete DMA bus"
)

// Driver owns both controllers of a Bus and the flag store shared by them.
type Driver struct {
	bus   *Bus
	flags FlagStore
	ctrls [NumControllers]Controller
}

// New returns a driver for the given bus. All register and collaborator
// fields of bus must be set.
func New(bus *Bus) *Driver {
	if bus == nil || bus.Clock == nil || bus.Reset == nil || bus.IRQ == nil {
		panic(badBus)
	}
	d := &Driver{bus: bus}
	for i := range d.ctrls {
		d.ctrls[i] = Controller{
			d:  d,
			id: ControllerID(i),
			hw: &bus.Controllers[i],
		}
	}
	return d
}

// Controller returns the handle of controller c.
func (d *Driver) Controller(c ControllerID) *Controller {
	if c >= NumControllers {
		panic(badController)
	}
	return &d.ctrls[c]
}

// Stream is a shorthand for d.Controller(c).Stream(index).
func (d *Driver) Stream(c ControllerID, index uint8) Stream {
	return d.Controller(c).Stream(index)
}

// Flags returns the flag store of the driver.
func (d *Driver) Flags() *FlagStore { return &d.flags }

// Controller represents one of the two DMA controllers.
type Controller struct {
	d  *Driver
	id ControllerID
	// hw points to the controller's registers.
	hw *ControllerRegisters

	// mu guards claimedMask and dl.
	mu sync.Mutex
	// Bitmask of claimed streams.
	claimedMask uint8
	// Called by the dispatcher after a flag was latched, see SetNotify.
	notify [StreamsPerController]func(Stream, Flag)
	// Bounds the busy-wait of MemoryToMemory.
	dl deadliner
}

// ID returns DMA1 or DMA2.
func (c *Controller) ID() ControllerID { return c.id }

// Stream returns a stream by index.
func (c *Controller) Stream(index uint8) Stream {
	if index >= StreamsPerController {
		panic(badStreamIndex)
	}
	return Stream{ctrl: c, index: index}
}

// ClaimStream returns an unclaimed stream or ErrStreamBusy if all streams of
// the controller are claimed. The stream reserved for memory to memory
// transfers on DMA2 is never handed out.
func (c *Controller) ClaimStream() (Stream, error) {
	for i := uint8(0); i < StreamsPerController; i++ {
		if c.id == DMA2 && i == ReservedStream {
			continue
		}
		s := c.Stream(i)
		if s.TryClaim() {
			return s, nil
		}
	}
	return Stream{}, ErrStreamBusy
}

// EnableClock switches on the clock of the controller.
func (c *Controller) EnableClock() { c.d.bus.Clock.EnableClock(c.id) }

// DisableClock switches off the clock of the controller.
func (c *Controller) DisableClock() { c.d.bus.Clock.DisableClock(c.id) }

// Reset pulses the controller's reset line. Latched flags are kept.
func (c *Controller) Reset() {
	logger().Debug("reset", "controller", c.id)
	c.d.bus.Reset.AssertReset(c.id)
}

// SetNotify installs fn to be called from interrupt context each time a flag
// is latched for stream. It must be set before the stream's interrupt is
// enabled and must not block. A nil fn removes the hook.
func (c *Controller) SetNotify(stream uint8, fn func(Stream, Flag)) {
	c.Stream(stream) // Panic on invalid index.
	c.notify[stream] = fn
}

// Stream represents one stream of a DMA controller.
type Stream struct {
	// The controller containing this stream.
	ctrl *Controller
	// index of this stream
	index uint8
}

// IsValid returns true if the stream was obtained from a Controller.
func (s Stream) IsValid() bool {
	return s.ctrl != nil && s.index < StreamsPerController
}

// Controller returns the controller owning the stream.
func (s Stream) Controller() *Controller { return s.ctrl }

// Index returns the index of the stream within its controller.
func (s Stream) Index() uint8 { return s.index }

// IsClaimed returns true if the stream is claimed by other code and should not be used.
func (s Stream) IsClaimed() bool {
	s.mustValid()
	s.ctrl.mu.Lock()
	defer s.ctrl.mu.Unlock()
	return s.ctrl.claimedMask&(1<<s.index) != 0
}

// TryClaim claims the stream and returns true, or returns false if the
// stream was already claimed.
func (s Stream) TryClaim() bool {
	s.mustValid()
	s.ctrl.mu.Lock()
	defer s.ctrl.mu.Unlock()
	if s.ctrl.claimedMask&(1<<s.index) != 0 {
		return false
	}
	s.ctrl.claimedMask |= 1 << s.index
	return true
}

// Unclaim releases the stream for use by other code.
func (s Stream) Unclaim() {
	s.mustValid()
	s.ctrl.mu.Lock()
	defer s.ctrl.mu.Unlock()
	s.ctrl.claimedMask &^= 1 << s.index
}

// Flags returns a snapshot of the stream's latched status.
func (s Stream) Flags() StatusFlags {
	s.mustValid()
	return s.ctrl.d.flags.Get(s.ctrl.id, s.index)
}

// ResetFlags clears the stream's latched status.
func (s Stream) ResetFlags() {
	s.mustValid()
	s.ctrl.d.flags.Reset(s.ctrl.id, s.index)
}

func (s Stream) String() string {
	if !s.IsValid() {
		return "DMA?_Stream?"
	}
	return s.ctrl.id.String() + "_Stream" + string(rune('0'+s.index))
}

func (s Stream) hw() *StreamRegisters { return &s.ctrl.hw.Streams[s.index] }

// statusRegisters returns the status and clear register holding the stream's
// flags and the offset of its field within them.
func (s Stream) statusRegisters() (isr, ifcr Register, shift uint8) {
	hw := s.ctrl.hw
	if s.index < 4 {
		return hw.LISR, hw.LIFCR, statusShift[s.index]
	}
	return hw.HISR, hw.HIFCR, statusShift[s.index-4]
}

func (s Stream) mustValid() {
	if !s.IsValid() {
		panic("use of uninitialized DMA stream")
	}
}
