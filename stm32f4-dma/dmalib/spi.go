package dmalib

import (
	"context"
	"errors"
	"time"

	dma "github.com/tinygo-org/stm32dma/stm32f4-dma"
	"tinygo.org/x/drivers"
)

var _ drivers.SPI = (*SPITx)(nil)

var errTxOnly = errors.New("dmalib: SPITx can only transmit")

// SPITx feeds the data register of an SPI peripheral from memory through a
// DMA stream. It only transmits; whatever the peripheral receives is
// dropped.
type SPITx struct {
	stream  dma.Stream
	cfg     dma.StreamConfig
	dr      uint32
	mem     AddressMapper
	timeout time.Duration
}

// NewSPITx sets up stream to write bytes to the SPI data register at
// dataRegister, with request channel channel. The stream is claimed if it
// is not already.
func NewSPITx(stream dma.Stream, channel uint8, dataRegister uint32, mem AddressMapper) (*SPITx, error) {
	if !stream.IsValid() {
		return nil, errors.New("dmalib: invalid stream")
	}
	stream.TryClaim() // Stream should be claimed beforehand, we just guarantee it's claimed.
	stream.Deinit()
	cfg := dma.StreamConfig{
		Channel:         channel,
		Direction:       dma.MemoryToPeripheral,
		MemorySize:      dma.Size8,
		PeripheralSize:  dma.Size8,
		MemoryIncrement: true,
		Circular:        dma.CircularDisable,
		Priority:        dma.PriorityMedium,
		Interrupts:      dma.FlagTransferComplete | dma.FlagTransferError,
	}
	if err := stream.Configure(cfg); err != nil {
		return nil, err
	}
	return &SPITx{stream: stream, cfg: cfg, dr: dataRegister, mem: mem}, nil
}

// SetTimeout bounds the wait for each chunk of a transfer. Zero waits
// forever.
func (spi *SPITx) SetTimeout(timeout time.Duration) { spi.timeout = timeout }

// Tx transmits w. r must be nil.
func (spi *SPITx) Tx(w, r []byte) error {
	if r != nil {
		return errTxOnly
	}
	for len(w) > 0 {
		n := min(len(w), dma.MaxCount)
		if err := spi.send(w[:n]); err != nil {
			return err
		}
		w = w[n:]
	}
	return nil
}

// Transfer transmits c and returns zero.
func (spi *SPITx) Transfer(c byte) (byte, error) {
	return 0, spi.Tx([]byte{c}, nil)
}

func (spi *SPITx) send(chunk []byte) error {
	s := spi.stream
	s.ResetFlags()
	err := s.SetTarget(spi.cfg, dma.Target{
		MemoryAddr:     spi.mem.Addr(chunk),
		PeripheralAddr: spi.dr,
		Count:          uint16(len(chunk)),
	})
	if err != nil {
		return err
	}
	ctx := context.Background()
	if spi.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spi.timeout)
		defer cancel()
	}
	s.Arm()
	_, err = s.Wait(ctx, dma.FlagTransferComplete)
	if err != nil {
		s.Disarm()
		if errors.Is(err, context.DeadlineExceeded) {
			return dma.ErrTimeout
		}
		return err
	}
	return nil
}
