package dmasim

import dma "github.com/tinygo-org/stm32dma/stm32f4-dma"

// Bit layout of the modelled registers, see RM0090 section 10.5.
const (
	crEN    = 1 << 0
	crDMEIE = 1 << 1
	crTEIE  = 1 << 2
	crHTIE  = 1 << 3
	crTCIE  = 1 << 4
	crCIRC  = 1 << 8
	crPINC  = 1 << 9
	crMINC  = 1 << 10

	crDirPos   = 6
	crPSizePos = 11
	crMSizePos = 13

	fcrFEIE  = 1 << 7
	fcrReset = 0x21

	isrFEIF  = 1 << 0
	isrDMEIF = 1 << 2
	isrTEIF  = 1 << 3
	isrHTIF  = 1 << 4
	isrTCIF  = 1 << 5

	// FieldMask covers the status field of one stream.
	FieldMask = 0x3f
)

var fieldShift = [4]uint8{0, 6, 16, 22}

// StatusBits returns the LISR/HISR bits for the conditions in f of a stream,
// and whether they live in the high register.
func StatusBits(stream uint8, f dma.Flag) (bits uint32, high bool) {
	if f&dma.FlagFifoError != 0 {
		bits |= isrFEIF
	}
	if f&dma.FlagDirectModeError != 0 {
		bits |= isrDMEIF
	}
	if f&dma.FlagTransferError != 0 {
		bits |= isrTEIF
	}
	if f&dma.FlagHalfTransfer != 0 {
		bits |= isrHTIF
	}
	if f&dma.FlagTransferComplete != 0 {
		bits |= isrTCIF
	}
	return bits << fieldShift[stream%4], stream >= 4
}

// ControllerRegs is the register block of one simulated controller.
type ControllerRegs struct {
	LISR    Register
	HISR    Register
	LIFCR   Register
	HIFCR   Register
	Streams [dma.StreamsPerController]StreamRegs
}

// StreamRegs are the registers of one simulated stream.
type StreamRegs struct {
	CR   Register
	NDTR Register
	PAR  Register
	M0AR Register
	M1AR Register
	FCR  Register
}

func (c *ControllerRegs) all() []*Register {
	regs := []*Register{&c.LISR, &c.HISR, &c.LIFCR, &c.HIFCR}
	for i := range c.Streams {
		st := &c.Streams[i]
		regs = append(regs, &st.CR, &st.NDTR, &st.PAR, &st.M0AR, &st.M1AR, &st.FCR)
	}
	return regs
}

func (c *ControllerRegs) reset() {
	for _, r := range c.all() {
		r.poke(0)
	}
	for i := range c.Streams {
		c.Streams[i].FCR.poke(fcrReset)
	}
}

func (c *ControllerRegs) status(stream uint8) *Register {
	if stream < 4 {
		return &c.LISR
	}
	return &c.HISR
}

// enabledPending returns the pending status bits of a stream whose interrupt
// enable bit is set, shifted down to bit 0.
func (c *ControllerRegs) enabledPending(stream uint8) uint32 {
	st := &c.Streams[stream]
	cr, fcr := st.CR.Get(), st.FCR.Get()
	pending := c.status(stream).Get() >> fieldShift[stream%4]
	var enabled uint32
	if fcr&fcrFEIE != 0 {
		enabled |= isrFEIF
	}
	if cr&crDMEIE != 0 {
		enabled |= isrDMEIF
	}
	if cr&crTEIE != 0 {
		enabled |= isrTEIF
	}
	if cr&crHTIE != 0 {
		enabled |= isrHTIF
	}
	if cr&crTCIE != 0 {
		enabled |= isrTCIF
	}
	return pending & enabled
}
