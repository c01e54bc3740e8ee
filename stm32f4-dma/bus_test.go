package dma

import (
	"testing"

	"go.uber.org/mock/gomock"
)

//go:generate mockgen -destination mock_bus_test.go -package dma -write_package_comment=false github.com/tinygo-org/stm32dma/stm32f4-dma ClockGate,ResetLine,InterruptRouter

// write is one software write seen by a testReg.
type write struct {
	reg   string
	value uint32
}

// testReg is a register that logs writes into a log shared by the whole bus,
// so tests can check the order of writes across registers.
type testReg struct {
	name  string
	value uint32
	log   *[]write
	// clears makes this a write-1-to-clear register for another one.
	clears *testReg
}

func (r *testReg) Get() uint32 { return r.value }

func (r *testReg) Set(value uint32) {
	*r.log = append(*r.log, write{r.name, value})
	if r.clears != nil {
		r.clears.value &^= value
		return
	}
	r.value = value
}

type testStream struct {
	CR, NDTR, PAR, M0AR, M1AR, FCR testReg
}

type testController struct {
	LISR, HISR, LIFCR, HIFCR testReg
	Streams                  [StreamsPerController]testStream
}

type testBus struct {
	ctrls [NumControllers]testController
	log   []write

	clock *MockClockGate
	reset *MockResetLine
	irq   *MockInterruptRouter

	d *Driver
}

// newTestBus returns a driver on fake registers. The collaborator mocks
// expect nothing; tests add expectations before use.
func newTestBus(t *testing.T) *testBus {
	mc := gomock.NewController(t)
	tb := &testBus{
		clock: NewMockClockGate(mc),
		reset: NewMockResetLine(mc),
		irq:   NewMockInterruptRouter(mc),
	}
	bus := &Bus{Clock: tb.clock, Reset: tb.reset, IRQ: tb.irq}
	for ci := range tb.ctrls {
		c := &tb.ctrls[ci]
		prefix := ControllerID(ci).String() + "."
		named := func(r *testReg, name string) *testReg {
			r.name = prefix + name
			r.log = &tb.log
			return r
		}
		regs := &bus.Controllers[ci]
		regs.LISR = named(&c.LISR, "LISR")
		regs.HISR = named(&c.HISR, "HISR")
		regs.LIFCR = named(&c.LIFCR, "LIFCR")
		regs.HIFCR = named(&c.HIFCR, "HIFCR")
		c.LIFCR.clears = &c.LISR
		c.HIFCR.clears = &c.HISR
		for si := range c.Streams {
			st := &c.Streams[si]
			sp := "S" + string(rune('0'+si))
			st.FCR.value = _SxFCR_Reset
			regs.Streams[si] = StreamRegisters{
				CR:   named(&st.CR, sp+"CR"),
				NDTR: named(&st.NDTR, sp+"NDTR"),
				PAR:  named(&st.PAR, sp+"PAR"),
				M0AR: named(&st.M0AR, sp+"M0AR"),
				M1AR: named(&st.M1AR, sp+"M1AR"),
				FCR:  named(&st.FCR, sp+"FCR"),
			}
		}
	}
	tb.d = New(bus)
	return tb
}

// pend sets raw status bits, as the hardware does.
func (tb *testBus) pend(c ControllerID, stream uint8, bits uint32) {
	isr := &tb.ctrls[c].LISR
	if stream >= 4 {
		isr = &tb.ctrls[c].HISR
	}
	isr.value |= bits << statusShift[stream%4]
}

func (tb *testBus) clearLog() { tb.log = tb.log[:0] }
