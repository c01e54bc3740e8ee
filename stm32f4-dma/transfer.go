package dma

import (
	"context"
	"time"
)

// ReservedStream is the stream of DMA2 used by MemoryToMemory. Only DMA2 can
// access memory on both of its ports.
const ReservedStream = 0

// SetTimeout bounds the wait of MemoryToMemory. Zero, the default, waits
// forever. The timeout is rounded up to a power of two nanoseconds.
func (c *Controller) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dl.setTimeout(timeout)
}

// newDeadline starts the wait of a transfer with the current timeout.
func (c *Controller) newDeadline() deadline {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dl.newDeadline()
}

// MemoryToMemory copies n data items from src to dst on the reserved stream
// and blocks until the hardware reports transfer complete.
//
// srcWidth and dstWidth are item widths in bits; any value other than 16 or
// 32 is taken as 8. The stream's own flags in the flag store are reset before
// the transfer. A transfer that never completes, for example because n is
// zero, blocks forever unless a timeout was set with SetTimeout.
//
// MemoryToMemory returns ErrStreamBusy if the reserved stream is in use by
// another call, ErrTimeout when the timeout expires and ErrTransferError on
// a bus error.
func (c *Controller) MemoryToMemory(src uint32, srcWidth, dstWidth uint8, dst uint32, srcInc, dstInc bool, n uint16) error {
	return c.memoryToMemory(context.Background(), src, srcWidth, dstWidth, dst, srcInc, dstInc, n)
}

// MemoryToMemoryContext is like MemoryToMemory but also gives up when ctx is
// done, returning ctx.Err().
func (c *Controller) MemoryToMemoryContext(ctx context.Context, src uint32, srcWidth, dstWidth uint8, dst uint32, srcInc, dstInc bool, n uint16) error {
	return c.memoryToMemory(ctx, src, srcWidth, dstWidth, dst, srcInc, dstInc, n)
}

func (c *Controller) memoryToMemory(ctx context.Context, src uint32, srcWidth, dstWidth uint8, dst uint32, srcInc, dstInc bool, n uint16) error {
	if c.id != DMA2 {
		panic(badReservedController)
	}
	s := c.Stream(ReservedStream)
	if !s.TryClaim() {
		return ErrStreamBusy
	}
	defer s.Unclaim()

	hw := s.hw()
	if hw.CR.Get()&_SxCR_EN != 0 {
		return ErrStreamBusy
	}
	c.EnableClock()

	clearBits(hw.CR, _SxCR_CHSEL_Msk|_SxCR_DIR_Msk)
	setBits(hw.CR, uint32(MemoryToMemory)<<_SxCR_DIR_Pos)
	setBits(hw.CR, _SxCR_TCIE|_SxCR_PL_Msk)
	replaceBits(hw.CR, uint32(sizeFromWidth(srcWidth))<<_SxCR_PSIZE_Pos, _SxCR_PSIZE_Msk)
	replaceBits(hw.CR, uint32(sizeFromWidth(dstWidth))<<_SxCR_MSIZE_Pos, _SxCR_MSIZE_Msk)
	setBitMask(hw.CR, _SxCR_PINC, srcInc)
	setBitMask(hw.CR, _SxCR_MINC, dstInc)

	hw.PAR.Set(src)
	hw.M0AR.Set(dst)
	hw.NDTR.Set(uint32(n))

	s.ResetFlags()
	s.Arm()

	isr, ifcr, shift := s.statusRegisters()
	dl := c.newDeadline()
	for {
		// The dispatcher acknowledges the raw bit if the stream's interrupt
		// line was enabled earlier, so watch the flag store as well.
		raw := isr.Get() >> shift
		latched := c.d.flags.Load(c.id, ReservedStream)
		if raw&_ISR_TCIF != 0 || latched&FlagTransferComplete != 0 {
			break
		}
		if raw&_ISR_TEIF != 0 || latched&FlagTransferError != 0 {
			ifcr.Set(_ISR_TEIF << shift)
			s.Disarm()
			return ErrTransferError
		}
		if dl.expired() {
			s.Disarm()
			logger().Warn("memory to memory: timeout", "stream", s, "remaining", s.Remaining())
			return ErrTimeout
		}
		select {
		case <-ctx.Done():
			s.Disarm()
			return ctx.Err()
		default:
		}
		gosched()
	}
	ifcr.Set(_ISR_TCIF << shift)
	clearBits(hw.CR, _SxCR_EN)
	return nil
}

func sizeFromWidth(bits uint8) DataSize {
	switch bits {
	case 32:
		return Size32
	case 16:
		return Size16
	}
	return Size8
}

// Wait blocks until one of the flags in want or an error flag is latched for
// the stream and returns the latched status. An error flag is reported as
// ErrFifoError, ErrDirectModeError or ErrTransferError. If ctx is done first,
// Wait returns ctx.Err(). Flags are not reset.
//
// Wait relies on the dispatcher, so the stream must have been configured with
// the interrupts it waits for.
func (s Stream) Wait(ctx context.Context, want Flag) (StatusFlags, error) {
	s.mustValid()
	fs := &s.ctrl.d.flags
	for {
		f := fs.Load(s.ctrl.id, s.index)
		if err := f.Err(); err != nil {
			return statusFromFlag(f), err
		}
		if f&want != 0 {
			return statusFromFlag(f), nil
		}
		select {
		case <-ctx.Done():
			return statusFromFlag(f), ctx.Err()
		default:
		}
		gosched()
	}
}
