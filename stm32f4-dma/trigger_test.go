package dma

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArmClearsStatusFirst(t *testing.T) {
	for c := DMA1; c <= DMA2; c++ {
		for i := uint8(0); i < StreamsPerController; i++ {
			t.Run(fmt.Sprintf("%v_%d", c, i), func(t *testing.T) {
				tb := newTestBus(t)
				tb.pend(c, i, _ISR_TCIF|_ISR_TEIF)
				s := tb.d.Stream(c, i)

				s.Arm()

				ifcr := c.String() + ".LIFCR"
				if i >= 4 {
					ifcr = c.String() + ".HIFCR"
				}
				cr := fmt.Sprintf("%v.S%dCR", c, i)
				require.Len(t, tb.log, 2)
				assert.Equal(t, write{ifcr, 0x3f << statusShift[i%4]}, tb.log[0])
				assert.Equal(t, write{cr, _SxCR_EN}, tb.log[1])
				assert.Zero(t, tb.ctrls[c].LISR.value|tb.ctrls[c].HISR.value, "stale status cleared")
				assert.True(t, s.IsEnabled())
			})
		}
	}
}

func TestDisarm(t *testing.T) {
	tb := newTestBus(t)
	s := tb.d.Stream(DMA1, 4)
	tb.ctrls[DMA1].Streams[4].CR.value = _SxCR_EN | _SxCR_MINC
	s.Disarm()
	assert.False(t, s.IsEnabled())
	assert.Equal(t, _SxCR_MINC, tb.ctrls[DMA1].Streams[4].CR.value)
}
