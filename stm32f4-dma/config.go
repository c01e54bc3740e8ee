package dma

// Direction is the transfer direction of a stream.
type Direction uint8

const (
	PeripheralToMemory Direction = iota
	MemoryToPeripheral
	MemoryToMemory
)

// DataSize is the width of one data item on the memory or peripheral port.
type DataSize uint8

const (
	Size8 DataSize = iota
	Size16
	Size32
)

// Bytes returns the width in bytes.
func (s DataSize) Bytes() uint32 { return 1 << s }

// CircularMode is either CircularDisable or CircularEnable. Any other value
// is rejected by Stream.Configure.
type CircularMode uint8

const (
	CircularDisable CircularMode = iota
	CircularEnable
)

// FlowControl selects whether the DMA or the peripheral ends the transfer.
type FlowControl uint8

const (
	FlowDMA FlowControl = iota
	FlowPeripheral
)

// Priority is the software priority of a stream within its controller.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityVeryHigh
)

// StreamConfig holds the transfer parameters of a stream. It is read during
// Configure and SetTarget and not retained afterwards.
type StreamConfig struct {
	// Request channel, 0..7.
	Channel             uint8
	Direction           Direction
	MemorySize          DataSize
	PeripheralSize      DataSize
	MemoryIncrement     bool
	PeripheralIncrement bool
	Circular            CircularMode
	FlowControl         FlowControl
	Priority            Priority
	// Conditions that raise the stream's interrupt.
	Interrupts Flag
}

// Target holds the addresses and length of a transfer. The memory behind
// both addresses must stay valid until the hardware is done with it, which
// is after the call that applied the target returns.
type Target struct {
	MemoryAddr     uint32
	PeripheralAddr uint32
	Count          uint16
}

// Configure applies cfg to the stream's configuration register.
//
// Fields are ORed into the register one at a time, so bits left over from a
// previous configuration are kept; call Deinit first to start from reset
// values. The circular mode is validated last: on ErrInvalidCircularMode the
// fields before it have been written but the stream is never enabled.
// Configure returns ErrStreamBusy if the stream is enabled.
func (s Stream) Configure(cfg StreamConfig) error {
	s.mustValid()
	if cfg.Channel >= ChannelsPerStream {
		panic(badChannel)
	}
	if cfg.Direction > MemoryToMemory {
		panic(badDirection)
	}
	if cfg.MemorySize > Size32 || cfg.PeripheralSize > Size32 {
		panic(badDataSize)
	}
	if cfg.Priority > PriorityVeryHigh {
		panic(badPriority)
	}
	if cfg.FlowControl > FlowPeripheral {
		panic(badFlowControl)
	}
	hw := s.hw()
	if hw.CR.Get()&_SxCR_EN != 0 {
		return ErrStreamBusy
	}

	c := s.ctrl
	c.EnableClock()
	setBits(hw.CR, uint32(cfg.Channel)<<_SxCR_CHSEL_Pos)
	setBits(hw.CR, boolToBit(cfg.FlowControl == FlowPeripheral)*_SxCR_PFCTRL)
	setBits(hw.CR, uint32(cfg.Priority)<<_SxCR_PL_Pos)
	setBits(hw.CR, uint32(cfg.MemorySize)<<_SxCR_MSIZE_Pos)
	setBits(hw.CR, uint32(cfg.PeripheralSize)<<_SxCR_PSIZE_Pos)
	setBits(hw.CR, uint32(cfg.Direction)<<_SxCR_DIR_Pos)

	if cfg.Interrupts&FlagAll != 0 {
		if cfg.Interrupts&FlagFifoError != 0 {
			setBits(hw.FCR, _SxFCR_FEIE)
		}
		setBits(hw.CR, interruptEnableBits(cfg.Interrupts))
		c.d.bus.IRQ.EnableInterruptLine(c.id, s.index)
	}

	setBits(hw.CR, boolToBit(cfg.MemoryIncrement)*_SxCR_MINC)
	setBits(hw.CR, boolToBit(cfg.PeripheralIncrement)*_SxCR_PINC)

	switch cfg.Circular {
	case CircularEnable:
		setBits(hw.CR, _SxCR_CIRC)
	case CircularDisable:
		clearBits(hw.CR, _SxCR_CIRC)
	default:
		logger().Warn("configure: invalid circular mode", "stream", s, "mode", cfg.Circular)
		return ErrInvalidCircularMode
	}
	logger().Debug("configure", "stream", s, "channel", cfg.Channel,
		"direction", cfg.Direction, "interrupts", cfg.Interrupts)
	return nil
}

// SetTarget rewrites data sizes, memory increment, item count and both
// addresses of a configured stream. It returns ErrStreamBusy if the stream is
// enabled.
func (s Stream) SetTarget(cfg StreamConfig, t Target) error {
	s.mustValid()
	if cfg.MemorySize > Size32 || cfg.PeripheralSize > Size32 {
		panic(badDataSize)
	}
	hw := s.hw()
	if hw.CR.Get()&_SxCR_EN != 0 {
		return ErrStreamBusy
	}
	clearBits(hw.CR, _SxCR_MSIZE_Msk|_SxCR_PSIZE_Msk|_SxCR_MINC)
	setBits(hw.CR, uint32(cfg.PeripheralSize)<<_SxCR_PSIZE_Pos)
	setBits(hw.CR, uint32(cfg.MemorySize)<<_SxCR_MSIZE_Pos)
	hw.NDTR.Set(uint32(t.Count))
	setBits(hw.CR, boolToBit(cfg.MemoryIncrement)*_SxCR_MINC)
	hw.M0AR.Set(t.MemoryAddr)
	hw.PAR.Set(t.PeripheralAddr)
	return nil
}

// Deinit disables the stream and puts its registers back to their reset
// values. Stale status bits are cleared; latched flags are kept.
func (s Stream) Deinit() {
	s.mustValid()
	hw := s.hw()
	clearBits(hw.CR, _SxCR_EN)
	hw.CR.Set(0)
	hw.NDTR.Set(0)
	hw.PAR.Set(0)
	hw.M0AR.Set(0)
	hw.M1AR.Set(0)
	hw.FCR.Set(_SxFCR_Reset)
	_, ifcr, shift := s.statusRegisters()
	ifcr.Set(_ISR_Field_Msk << shift)
}

// Remaining returns the number of data items the stream has yet to transfer.
func (s Stream) Remaining() uint16 {
	s.mustValid()
	return uint16(s.hw().NDTR.Get())
}

func interruptEnableBits(f Flag) (cr uint32) {
	if f&FlagTransferComplete != 0 {
		cr |= _SxCR_TCIE
	}
	if f&FlagHalfTransfer != 0 {
		cr |= _SxCR_HTIE
	}
	if f&FlagTransferError != 0 {
		cr |= _SxCR_TEIE
	}
	if f&FlagDirectModeError != 0 {
		cr |= _SxCR_DMEIE
	}
	return cr
}
