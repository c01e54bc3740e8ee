//go:build stm32f4

package main

import (
	"machine"
	"time"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
	"github.com/tinygo-org/stm32dma/stm32f4-dma/dmalib"
)

const (
	// SPI1 data register; SPI1_TX is channel 3 of DMA2 stream 3.
	spi1DR      = 0x4001_300c
	spi1Stream  = 3
	spi1Channel = 3
)

func main() {
	// Sleep to catch prints.
	time.Sleep(2 * time.Second)
	err := machine.SPI1.Configure(machine.SPIConfig{Frequency: 4_000_000})
	if err != nil {
		panic(err.Error())
	}
	// Let the SPI peripheral raise TX requests.
	machine.SPI1.Bus.CR2.SetBits(1 << 1)

	spi, err := dmalib.NewSPITx(dma.Default.Stream(dma.DMA2, spi1Stream), spi1Channel, spi1DR, dmalib.RAM{})
	if err != nil {
		panic(err.Error())
	}
	spi.SetTimeout(50 * time.Millisecond)
	msg := []byte("hello from DMA2 stream 3\r\n")
	for {
		if err := spi.Tx(msg, nil); err != nil {
			println("tx failed:", err.Error())
		}
		time.Sleep(500 * time.Millisecond)
	}
}
