package dma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	tb := newTestBus(t)
	tb.clock.EXPECT().EnableClock(DMA1)
	tb.irq.EXPECT().EnableInterruptLine(DMA1, uint8(3))

	err := tb.d.Stream(DMA1, 3).Configure(StreamConfig{
		Channel:         5,
		Direction:       MemoryToPeripheral,
		MemorySize:      Size32,
		PeripheralSize:  Size16,
		MemoryIncrement: true,
		Circular:        CircularEnable,
		FlowControl:     FlowPeripheral,
		Priority:        PriorityHigh,
		Interrupts:      FlagTransferComplete | FlagHalfTransfer | FlagTransferError,
	})
	require.NoError(t, err)

	want := 5<<_SxCR_CHSEL_Pos | _SxCR_PFCTRL | 2<<_SxCR_PL_Pos |
		2<<_SxCR_MSIZE_Pos | 1<<_SxCR_PSIZE_Pos | 1<<_SxCR_DIR_Pos |
		_SxCR_TCIE | _SxCR_HTIE | _SxCR_TEIE | _SxCR_MINC | _SxCR_CIRC
	st := &tb.ctrls[DMA1].Streams[3]
	assert.Equal(t, want, st.CR.value)
	assert.Equal(t, _SxFCR_Reset, st.FCR.value, "FIFO error interrupt not requested")
}

func TestConfigureFifoErrorInterrupt(t *testing.T) {
	tb := newTestBus(t)
	tb.clock.EXPECT().EnableClock(DMA2)
	tb.irq.EXPECT().EnableInterruptLine(DMA2, uint8(6))

	require.NoError(t, tb.d.Stream(DMA2, 6).Configure(StreamConfig{Interrupts: FlagFifoError}))

	st := &tb.ctrls[DMA2].Streams[6]
	assert.Equal(t, _SxFCR_Reset|_SxFCR_FEIE, st.FCR.value)
	assert.Zero(t, st.CR.value&(_SxCR_TCIE|_SxCR_HTIE|_SxCR_TEIE|_SxCR_DMEIE))
}

func TestConfigureWithoutInterrupts(t *testing.T) {
	tb := newTestBus(t)
	tb.clock.EXPECT().EnableClock(DMA1)
	// No EnableInterruptLine expected.

	require.NoError(t, tb.d.Stream(DMA1, 0).Configure(StreamConfig{Channel: 1}))
	assert.Equal(t, uint32(1)<<_SxCR_CHSEL_Pos, tb.ctrls[DMA1].Streams[0].CR.value)
}

func TestConfigureKeepsPreviousBits(t *testing.T) {
	tb := newTestBus(t)
	tb.clock.EXPECT().EnableClock(DMA1).Times(2)
	s := tb.d.Stream(DMA1, 1)

	require.NoError(t, s.Configure(StreamConfig{Channel: 2}))
	require.NoError(t, s.Configure(StreamConfig{Channel: 4}))
	assert.Equal(t, uint32(6)<<_SxCR_CHSEL_Pos, tb.ctrls[DMA1].Streams[1].CR.value)
}

func TestConfigureCircularDisableClears(t *testing.T) {
	tb := newTestBus(t)
	tb.clock.EXPECT().EnableClock(DMA1)
	st := &tb.ctrls[DMA1].Streams[2]
	st.CR.value = _SxCR_CIRC

	require.NoError(t, tb.d.Stream(DMA1, 2).Configure(StreamConfig{Circular: CircularDisable}))
	assert.Zero(t, st.CR.value&_SxCR_CIRC)
}

func TestConfigureInvalidCircularMode(t *testing.T) {
	tb := newTestBus(t)
	tb.clock.EXPECT().EnableClock(DMA1)
	s := tb.d.Stream(DMA1, 2)

	err := s.Configure(StreamConfig{MemoryIncrement: true, Circular: 7})
	require.ErrorIs(t, err, ErrInvalidCircularMode)

	st := &tb.ctrls[DMA1].Streams[2]
	assert.Equal(t, _SxCR_MINC, st.CR.value, "fields before the circular mode stay written")
	for _, w := range tb.log {
		if w.reg == "DMA1.S2CR" {
			assert.Zero(t, w.value&_SxCR_EN, "stream enabled by %#x", w.value)
		}
	}
}

func TestConfigureBusy(t *testing.T) {
	tb := newTestBus(t)
	tb.ctrls[DMA1].Streams[0].CR.value = _SxCR_EN

	err := tb.d.Stream(DMA1, 0).Configure(StreamConfig{})
	assert.ErrorIs(t, err, ErrStreamBusy)
	assert.Empty(t, tb.log)
}

func TestConfigureBadArguments(t *testing.T) {
	tb := newTestBus(t)
	s := tb.d.Stream(DMA1, 0)
	assert.PanicsWithValue(t, badChannel, func() { s.Configure(StreamConfig{Channel: 8}) })
	assert.PanicsWithValue(t, badDirection, func() { s.Configure(StreamConfig{Direction: 3}) })
	assert.PanicsWithValue(t, badDataSize, func() { s.Configure(StreamConfig{MemorySize: 3}) })
	assert.PanicsWithValue(t, badPriority, func() { s.Configure(StreamConfig{Priority: PriorityVeryHigh + 1}) })
	assert.PanicsWithValue(t, badFlowControl, func() { s.Configure(StreamConfig{FlowControl: FlowPeripheral + 1}) })
	assert.Empty(t, tb.log, "rejected before any register write")
	assert.PanicsWithValue(t, badStreamIndex, func() { tb.d.Stream(DMA1, 8) })
	assert.PanicsWithValue(t, badController, func() { tb.d.Controller(2) })
}

func TestSetTarget(t *testing.T) {
	tb := newTestBus(t)
	st := &tb.ctrls[DMA2].Streams[4]
	st.CR.value = 3<<_SxCR_CHSEL_Pos | 2<<_SxCR_MSIZE_Pos | _SxCR_MINC | _SxCR_TCIE

	cfg := StreamConfig{MemorySize: Size16, PeripheralSize: Size16, MemoryIncrement: false}
	err := tb.d.Stream(DMA2, 4).SetTarget(cfg, Target{MemoryAddr: 0x2000_0100, PeripheralAddr: 0x4001_300c, Count: 64})
	require.NoError(t, err)

	assert.Equal(t, 3<<_SxCR_CHSEL_Pos|1<<_SxCR_MSIZE_Pos|1<<_SxCR_PSIZE_Pos|_SxCR_TCIE, st.CR.value)
	assert.Equal(t, uint32(64), st.NDTR.value)
	assert.Equal(t, uint32(0x2000_0100), st.M0AR.value)
	assert.Equal(t, uint32(0x4001_300c), st.PAR.value)
	assert.Equal(t, uint16(64), tb.d.Stream(DMA2, 4).Remaining())

	st.CR.value |= _SxCR_EN
	err = tb.d.Stream(DMA2, 4).SetTarget(cfg, Target{Count: 1})
	assert.ErrorIs(t, err, ErrStreamBusy)
	assert.Equal(t, uint32(64), st.NDTR.value)
}

func TestDeinit(t *testing.T) {
	tb := newTestBus(t)
	st := &tb.ctrls[DMA1].Streams[6]
	st.CR.value = _SxCR_EN | _SxCR_MINC
	st.NDTR.value = 9
	st.FCR.value = _SxFCR_FEIE
	tb.pend(DMA1, 6, _ISR_TCIF)
	tb.d.Flags().latch(DMA1, 6, FlagTransferComplete)

	tb.d.Stream(DMA1, 6).Deinit()

	assert.Zero(t, st.CR.value)
	assert.Zero(t, st.NDTR.value)
	assert.Equal(t, _SxFCR_Reset, st.FCR.value)
	assert.Zero(t, tb.ctrls[DMA1].HISR.value)
	assert.True(t, tb.d.Stream(DMA1, 6).Flags().TransferComplete, "latched flags are kept")
}

func TestControllerCollaborators(t *testing.T) {
	tb := newTestBus(t)
	ctrl := tb.d.Controller(DMA2)
	tb.clock.EXPECT().EnableClock(DMA2)
	tb.clock.EXPECT().DisableClock(DMA2)
	tb.reset.EXPECT().AssertReset(DMA2)

	ctrl.EnableClock()
	ctrl.Reset()
	ctrl.DisableClock()
	assert.Equal(t, DMA2, ctrl.ID())
}

func TestNewIncompleteBus(t *testing.T) {
	assert.PanicsWithValue(t, badBus, func() { New(nil) })
	assert.PanicsWithValue(t, badBus, func() { New(&Bus{}) })
}

func TestClaimStream(t *testing.T) {
	tb := newTestBus(t)
	ctrl := tb.d.Controller(DMA2)
	for i := uint8(1); i < StreamsPerController; i++ {
		s, err := ctrl.ClaimStream()
		require.NoError(t, err)
		assert.Equal(t, i, s.Index(), "stream %d is reserved", ReservedStream)
		assert.True(t, s.IsClaimed())
	}
	_, err := ctrl.ClaimStream()
	assert.ErrorIs(t, err, ErrStreamBusy)

	ctrl.Stream(3).Unclaim()
	s, err := ctrl.ClaimStream()
	require.NoError(t, err)
	assert.Equal(t, "DMA2_Stream3", s.String())
}

func TestZeroStreamString(t *testing.T) {
	var s Stream
	assert.False(t, s.IsValid())
	assert.Equal(t, "DMA?_Stream?", s.String())
}
