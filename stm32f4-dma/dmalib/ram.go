//go:build tinygo

package dmalib

import "unsafe"

// RAM maps buffers in on-chip memory to their own address.
type RAM struct{}

func (RAM) Addr(buf []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
}
