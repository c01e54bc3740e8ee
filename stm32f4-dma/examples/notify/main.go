//go:build stm32f4

package main

import (
	"time"
	"unsafe"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
)

var ticks [64]uint32

func main() {
	// Sleep to catch prints.
	time.Sleep(2 * time.Second)
	s, err := dma.Default.Controller(dma.DMA2).ClaimStream()
	if err != nil {
		panic(err.Error())
	}
	events := make(chan dma.Flag, 8)
	s.Controller().SetNotify(s.Index(), func(_ dma.Stream, f dma.Flag) {
		select {
		case events <- f:
		default:
		}
	})

	cfg := dma.StreamConfig{
		Direction:       dma.MemoryToMemory,
		MemorySize:      dma.Size32,
		PeripheralSize:  dma.Size32,
		MemoryIncrement: true,
		Priority:        dma.PriorityLow,
		Interrupts:      dma.FlagTransferComplete | dma.FlagHalfTransfer | dma.FlagErrors,
	}
	if err := s.Configure(cfg); err != nil {
		panic(err.Error())
	}
	for i := uint32(0); ; i++ {
		// Fill the buffer with a single word.
		err = s.SetTarget(cfg, dma.Target{
			PeripheralAddr: uint32(uintptr(unsafe.Pointer(&i))),
			MemoryAddr:     uint32(uintptr(unsafe.Pointer(&ticks[0]))),
			Count:          uint16(len(ticks)),
		})
		if err != nil {
			panic(err.Error())
		}
		s.ResetFlags()
		s.Arm()
		for done := false; !done; {
			f := <-events
			println(s.String(), "event", f.String())
			done = f&(dma.FlagTransferComplete|dma.FlagErrors) != 0
		}
		println("flags", s.Flags().Flag().String(), "ticks[63] =", ticks[63])
		time.Sleep(time.Second)
	}
}
