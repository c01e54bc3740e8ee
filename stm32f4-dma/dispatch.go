package dma

// dispatchOrder lists the stream conditions in the order the dispatcher
// tests them. Only the first pending one is latched and acknowledged per
// invocation; the others stay pending in hardware and are handled when the
// interrupt fires again.
var dispatchOrder = [...]struct {
	bit  uint32
	flag Flag
}{
	{_ISR_FEIF, FlagFifoError},
	{_ISR_DMEIF, FlagDirectModeError},
	{_ISR_TEIF, FlagTransferError},
	{_ISR_HTIF, FlagHalfTransfer},
	{_ISR_TCIF, FlagTransferComplete},
}

// HandleInterrupt is the interrupt handler of one stream. It latches the
// highest priority pending condition of the stream into the flag store,
// acknowledges it in hardware and runs the stream's notify hook.
//
// Invocations for the same stream must not overlap; invocations for
// different streams may.
//
//go:nosplit
func (c *Controller) HandleInterrupt(stream uint8) {
	s := c.Stream(stream)
	isr, ifcr, shift := s.statusRegisters()
	pending := isr.Get() >> shift
	for _, ev := range dispatchOrder {
		if pending&ev.bit == 0 {
			continue
		}
		c.d.flags.latch(c.id, stream, ev.flag)
		ifcr.Set(ev.bit << shift)
		if fn := c.notify[stream]; fn != nil {
			fn(s, ev.flag)
		}
		return
	}
}

// HandleInterrupt runs the dispatcher of a stream, see
// Controller.HandleInterrupt.
func (d *Driver) HandleInterrupt(c ControllerID, stream uint8) {
	d.Controller(c).HandleInterrupt(stream)
}

// IRQ is an interrupt number of the Cortex-M NVIC.
type IRQ uint8

// Stream interrupt numbers of the STM32F40x/41x vector table.
const (
	irqDMA1Stream0 = 11
	irqDMA1Stream1 = 12
	irqDMA1Stream2 = 13
	irqDMA1Stream3 = 14
	irqDMA1Stream4 = 15
	irqDMA1Stream5 = 16
	irqDMA1Stream6 = 17
	irqDMA1Stream7 = 47
	irqDMA2Stream0 = 56
	irqDMA2Stream1 = 57
	irqDMA2Stream2 = 58
	irqDMA2Stream3 = 59
	irqDMA2Stream4 = 60
	irqDMA2Stream5 = 68
	irqDMA2Stream6 = 69
	irqDMA2Stream7 = 70
)

// irqTable maps each stream to its interrupt number.
var irqTable = [NumControllers][StreamsPerController]IRQ{
	DMA1: {
		irqDMA1Stream0, irqDMA1Stream1, irqDMA1Stream2, irqDMA1Stream3,
		irqDMA1Stream4, irqDMA1Stream5, irqDMA1Stream6, irqDMA1Stream7,
	},
	DMA2: {
		irqDMA2Stream0, irqDMA2Stream1, irqDMA2Stream2, irqDMA2Stream3,
		irqDMA2Stream4, irqDMA2Stream5, irqDMA2Stream6, irqDMA2Stream7,
	},
}

// IRQ returns the interrupt number of the stream.
func (s Stream) IRQ() IRQ {
	s.mustValid()
	return irqTable[s.ctrl.id][s.index]
}

// StreamOf returns the stream raising irq, or false if irq is not a DMA
// stream interrupt.
func StreamOf(irq IRQ) (c ControllerID, stream uint8, ok bool) {
	for ci := range irqTable {
		for si, n := range irqTable[ci] {
			if n == irq {
				return ControllerID(ci), uint8(si), true
			}
		}
	}
	return 0, 0, false
}

// Dispatch runs the dispatcher of the stream behind irq. It returns false
// if irq is not a DMA stream interrupt.
func (d *Driver) Dispatch(irq IRQ) bool {
	c, stream, ok := StreamOf(irq)
	if !ok {
		return false
	}
	d.ctrls[c].HandleInterrupt(stream)
	return true
}
