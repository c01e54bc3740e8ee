// Package dmalib builds peripheral drivers on top of the DMA streams of
// package dma.
package dmalib

import dma "github.com/tinygo-org/stm32dma/stm32f4-dma"

// AddressMapper returns the bus address the DMA controller uses for a
// buffer. RAM implements it for code running on the chip; the simulator in
// package dmasim implements it on a host.
type AddressMapper interface {
	Addr(buf []byte) uint32
}

// Copy copies min(len(dst), len(src)) bytes with the memory to memory stream
// of ctrl, which must be DMA2. Buffers whose length is a multiple of four
// are moved a word at a time. It returns the number of bytes copied.
func Copy(ctrl *dma.Controller, mem AddressMapper, dst, src []byte) (int, error) {
	n := min(len(dst), len(src))
	width, size := uint8(8), 1
	if n%4 == 0 {
		width, size = 32, 4
	}
	maxChunk := dma.MaxCount * size
	for off := 0; off < n; {
		k := min(n-off, maxChunk)
		err := ctrl.MemoryToMemory(mem.Addr(src[off:off+k]), width, width,
			mem.Addr(dst[off:off+k]), true, true, uint16(k/size))
		if err != nil {
			return off, err
		}
		off += k
	}
	return n, nil
}
