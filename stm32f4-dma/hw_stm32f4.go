//go:build stm32f4

package dma

import (
	"runtime/interrupt"
	"runtime/volatile"
	"unsafe"
)

// Single DMA stream. See RM0090 section 10.5.5.
//
//goland:noinspection GoSnakeCaseUsage
type streamHW struct {
	CR   volatile.Register32
	NDTR volatile.Register32
	PAR  volatile.Register32
	M0AR volatile.Register32
	M1AR volatile.Register32
	FCR  volatile.Register32
}

// DMA controller register block.
//
//goland:noinspection GoSnakeCaseUsage
type controllerHW struct {
	LISR  volatile.Register32
	HISR  volatile.Register32
	LIFCR volatile.Register32
	HIFCR volatile.Register32
	ST    [StreamsPerController]streamHW
}

var (
	dma1HW = (*controllerHW)(unsafe.Pointer(uintptr(dma1Base)))
	dma2HW = (*controllerHW)(unsafe.Pointer(uintptr(dma2Base)))

	ahb1RSTR = (*volatile.Register32)(unsafe.Pointer(uintptr(rccAHB1RSTR)))
	ahb1ENR  = (*volatile.Register32)(unsafe.Pointer(uintptr(rccAHB1ENR)))
)

// Default is the driver of the on-chip DMA controllers.
var Default = New(&Bus{
	Controllers: [NumControllers]ControllerRegisters{bind(dma1HW), bind(dma2HW)},
	Clock:       rcc{},
	Reset:       rcc{},
	IRQ:         &lines,
})

func bind(hw *controllerHW) (regs ControllerRegisters) {
	regs.LISR = &hw.LISR
	regs.HISR = &hw.HISR
	regs.LIFCR = &hw.LIFCR
	regs.HIFCR = &hw.HIFCR
	for i := range hw.ST {
		st := &hw.ST[i]
		regs.Streams[i] = StreamRegisters{
			CR:   &st.CR,
			NDTR: &st.NDTR,
			PAR:  &st.PAR,
			M0AR: &st.M0AR,
			M1AR: &st.M1AR,
			FCR:  &st.FCR,
		}
	}
	return regs
}

type rcc struct{}

func (rcc) EnableClock(c ControllerID) {
	ahb1ENR.SetBits(1 << (rccDMA1Pos + uint32(c)))
}

func (rcc) DisableClock(c ControllerID) {
	ahb1ENR.ClearBits(1 << (rccDMA1Pos + uint32(c)))
}

func (rcc) AssertReset(c ControllerID) {
	bit := uint32(1) << (rccDMA1Pos + uint32(c))
	ahb1RSTR.SetBits(bit)
	ahb1RSTR.ClearBits(bit)
}

// nvic routes the 16 stream interrupts to the dispatcher.
type nvic [NumControllers][StreamsPerController]interrupt.Interrupt

var lines nvic

func (n *nvic) EnableInterruptLine(c ControllerID, stream uint8) {
	n[c][stream].Enable()
}

// interrupt.New needs a constant interrupt number, hence one call per stream.
func init() {
	lines[DMA1][0] = interrupt.New(irqDMA1Stream0, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(0) })
	lines[DMA1][1] = interrupt.New(irqDMA1Stream1, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(1) })
	lines[DMA1][2] = interrupt.New(irqDMA1Stream2, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(2) })
	lines[DMA1][3] = interrupt.New(irqDMA1Stream3, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(3) })
	lines[DMA1][4] = interrupt.New(irqDMA1Stream4, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(4) })
	lines[DMA1][5] = interrupt.New(irqDMA1Stream5, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(5) })
	lines[DMA1][6] = interrupt.New(irqDMA1Stream6, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(6) })
	lines[DMA1][7] = interrupt.New(irqDMA1Stream7, func(interrupt.Interrupt) { Default.ctrls[DMA1].HandleInterrupt(7) })
	lines[DMA2][0] = interrupt.New(irqDMA2Stream0, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(0) })
	lines[DMA2][1] = interrupt.New(irqDMA2Stream1, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(1) })
	lines[DMA2][2] = interrupt.New(irqDMA2Stream2, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(2) })
	lines[DMA2][3] = interrupt.New(irqDMA2Stream3, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(3) })
	lines[DMA2][4] = interrupt.New(irqDMA2Stream4, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(4) })
	lines[DMA2][5] = interrupt.New(irqDMA2Stream5, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(5) })
	lines[DMA2][6] = interrupt.New(irqDMA2Stream6, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(6) })
	lines[DMA2][7] = interrupt.New(irqDMA2Stream7, func(interrupt.Interrupt) { Default.ctrls[DMA2].HandleInterrupt(7) })
}
