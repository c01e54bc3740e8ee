package dma

// Register map of the STM32F4 DMA controller, see RM0090 section 10.5.

// Stream configuration register (DMA_SxCR).
//
//goland:noinspection GoSnakeCaseUsage
const (
	_SxCR_EN     uint32 = 1 << 0
	_SxCR_DMEIE  uint32 = 1 << 1
	_SxCR_TEIE   uint32 = 1 << 2
	_SxCR_HTIE   uint32 = 1 << 3
	_SxCR_TCIE   uint32 = 1 << 4
	_SxCR_PFCTRL uint32 = 1 << 5
	_SxCR_CIRC   uint32 = 1 << 8
	_SxCR_PINC   uint32 = 1 << 9
	_SxCR_MINC   uint32 = 1 << 10

	_SxCR_DIR_Pos   = 6
	_SxCR_DIR_Msk   = uint32(0x3) << _SxCR_DIR_Pos
	_SxCR_PSIZE_Pos = 11
	_SxCR_PSIZE_Msk = uint32(0x3) << _SxCR_PSIZE_Pos
	_SxCR_MSIZE_Pos = 13
	_SxCR_MSIZE_Msk = uint32(0x3) << _SxCR_MSIZE_Pos
	_SxCR_PL_Pos    = 16
	_SxCR_PL_Msk    = uint32(0x3) << _SxCR_PL_Pos
	_SxCR_CHSEL_Pos = 25
	_SxCR_CHSEL_Msk = uint32(0x7) << _SxCR_CHSEL_Pos
)

// Stream FIFO control register (DMA_SxFCR).
//
//goland:noinspection GoSnakeCaseUsage
const (
	_SxFCR_FEIE  uint32 = 1 << 7
	_SxFCR_Reset uint32 = 0x21
)

// Interrupt status bits of one stream, relative to the stream's field offset
// in LISR/HISR. The clear registers LIFCR/HIFCR use the same layout.
//
//goland:noinspection GoSnakeCaseUsage
const (
	_ISR_FEIF  uint32 = 1 << 0
	_ISR_DMEIF uint32 = 1 << 2
	_ISR_TEIF  uint32 = 1 << 3
	_ISR_HTIF  uint32 = 1 << 4
	_ISR_TCIF  uint32 = 1 << 5

	// Width of the per-stream field, written whole when arming.
	_ISR_Field_Msk uint32 = 0x3f
)

// statusShift is the bit offset of a stream's status field within its half
// of the controller (LISR for streams 0..3, HISR for 4..7).
var statusShift = [4]uint8{0, 6, 16, 22}

// Base addresses on the AHB1 bus.
const (
	dma1Base = 0x4002_6000
	dma2Base = 0x4002_6400
	rccBase  = 0x4002_3800

	rccAHB1RSTR = rccBase + 0x10
	rccAHB1ENR  = rccBase + 0x30

	// DMA1EN and DMA1RST sit at bit 21, DMA2 one above.
	rccDMA1Pos = 21
)
