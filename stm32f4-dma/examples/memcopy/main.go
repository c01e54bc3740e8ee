//go:build stm32f4

package main

import (
	"time"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
	"github.com/tinygo-org/stm32dma/stm32f4-dma/dmalib"
)

func main() {
	// Sleep to catch prints.
	time.Sleep(2 * time.Second)
	ctrl := dma.Default.Controller(dma.DMA2)
	ctrl.SetTimeout(100 * time.Millisecond)

	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make([]byte, len(src))
	for {
		start := time.Now()
		n, err := dmalib.Copy(ctrl, dmalib.RAM{}, dst, src)
		elapsed := time.Since(start)
		if err != nil {
			println("copy failed:", err.Error())
		} else {
			println("copied", n, "bytes in", elapsed.String(), "last byte", dst[n-1])
		}
		clear(dst)
		time.Sleep(time.Second)
	}
}
