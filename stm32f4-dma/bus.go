package dma

// Register is a 32-bit memory-mapped hardware register. It is implemented by
// TinyGo's *volatile.Register32 and by the registers of package dmasim.
type Register interface {
	Get() uint32
	Set(value uint32)
}

// StreamRegisters holds the six per-stream registers in address order
// (offset 0x10 + 0x18*stream from the controller base).
type StreamRegisters struct {
	CR   Register // configuration
	NDTR Register // number of data items
	PAR  Register // peripheral address
	M0AR Register // memory 0 address
	M1AR Register // memory 1 address, double buffer mode only
	FCR  Register // FIFO control
}

// ControllerRegisters holds the register block of one DMA controller.
//
// Interrupt status of streams 0..3 lives in LISR/LIFCR and of streams 4..7
// in HISR/HIFCR.
type ControllerRegisters struct {
	LISR    Register
	HISR    Register
	LIFCR   Register
	HIFCR   Register
	Streams [StreamsPerController]StreamRegisters
}

// ClockGate switches the AHB1 clock of a DMA controller.
type ClockGate interface {
	EnableClock(c ControllerID)
	DisableClock(c ControllerID)
}

// ResetLine pulses the reset line of a DMA controller.
type ResetLine interface {
	AssertReset(c ControllerID)
}

// InterruptRouter binds the interrupt source of a stream to the dispatcher
// and enables it.
type InterruptRouter interface {
	EnableInterruptLine(c ControllerID, stream uint8)
}

// Bus is everything the driver touches outside of its own state: the
// register blocks of both controllers and the clock, reset and interrupt
// collaborators. All fields are required.
type Bus struct {
	Controllers [NumControllers]ControllerRegisters
	Clock       ClockGate
	Reset       ResetLine
	IRQ         InterruptRouter
}

func setBits(r Register, bits uint32) {
	r.Set(r.Get() | bits)
}

func clearBits(r Register, bits uint32) {
	r.Set(r.Get() &^ bits)
}

func replaceBits(r Register, value, mask uint32) {
	r.Set(r.Get()&^mask | value&mask)
}

func setBitMask(r Register, mask uint32, bit bool) {
	if bit {
		setBits(r, mask)
	} else {
		clearBits(r, mask) // unset bit.
	}
}

func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
