package dmasim

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// ramBase is where Addr starts handing out addresses, the SRAM1 base.
const ramBase = 0x2000_0000

type region struct {
	addr uint32
	buf  []byte
}

func (r region) contains(addr, size uint32) bool {
	return addr >= r.addr && uint64(addr)+uint64(size) <= uint64(r.addr)+uint64(len(r.buf))
}

type peripheral struct {
	onWrite func(uint32)
	onRead  func() uint32
}

// memory is the address space seen by the transfer engine.
type memory struct {
	mu          sync.Mutex
	regions     []region
	peripherals map[uint32]peripheral
	next        uint32
}

// Map makes buf visible to the transfer engine at addr.
func (s *Sim) Map(addr uint32, buf []byte) {
	s.mem.mu.Lock()
	defer s.mem.mu.Unlock()
	s.mem.regions = append(s.mem.regions, region{addr: addr, buf: buf})
}

// Addr returns the bus address of buf, mapping it first if needed. Mapping
// the same slice again returns the same address.
func (s *Sim) Addr(buf []byte) uint32 {
	m := &s.mem
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(buf) == 0 {
		return m.next
	}
	for _, r := range m.regions {
		if len(r.buf) > 0 && &r.buf[0] == &buf[0] {
			return r.addr
		}
	}
	addr := m.next
	m.regions = append(m.regions, region{addr: addr, buf: buf})
	m.next += (uint32(len(buf)) + 3) &^ 3
	return addr
}

// MapPeripheral installs a data register at addr. Writes by the engine go to
// onWrite, reads come from onRead; either may be nil.
func (s *Sim) MapPeripheral(addr uint32, onWrite func(uint32), onRead func() uint32) {
	m := &s.mem
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.peripherals == nil {
		m.peripherals = make(map[uint32]peripheral)
	}
	m.peripherals[addr] = peripheral{onWrite: onWrite, onRead: onRead}
}

type busError struct {
	addr uint32
}

func (e busError) Error() string {
	return fmt.Sprintf("dmasim: bus error at %#08x", e.addr)
}

func (m *memory) read(addr, size uint32) (uint32, error) {
	m.mu.Lock()
	p, isPeriph := m.peripherals[addr]
	var r region
	found := false
	if !isPeriph {
		for _, r = range m.regions {
			if r.contains(addr, size) {
				found = true
				break
			}
		}
	}
	m.mu.Unlock()

	switch {
	case isPeriph:
		if p.onRead == nil {
			return 0, nil
		}
		return p.onRead(), nil
	case !found:
		return 0, busError{addr}
	}
	b := r.buf[addr-r.addr:]
	switch size {
	case 4:
		return binary.LittleEndian.Uint32(b), nil
	case 2:
		return uint32(binary.LittleEndian.Uint16(b)), nil
	}
	return uint32(b[0]), nil
}

func (m *memory) write(addr, size, value uint32) error {
	m.mu.Lock()
	p, isPeriph := m.peripherals[addr]
	var r region
	found := false
	if !isPeriph {
		for _, r = range m.regions {
			if r.contains(addr, size) {
				found = true
				break
			}
		}
	}
	m.mu.Unlock()

	switch {
	case isPeriph:
		if p.onWrite != nil {
			p.onWrite(value)
		}
		return nil
	case !found:
		return busError{addr}
	}
	b := r.buf[addr-r.addr:]
	switch size {
	case 4:
		binary.LittleEndian.PutUint32(b, value)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(value))
	default:
		b[0] = uint8(value)
	}
	return nil
}

// move performs n item transfers as described by a stream configuration
// register. Each item is read at the source port's width and written at the
// destination port's width, truncated or zero extended.
func (m *memory) move(cr, par, m0ar, n uint32) error {
	dir := cr >> crDirPos & 3
	psize := uint32(1) << (cr >> crPSizePos & 3)
	msize := uint32(1) << (cr >> crMSizePos & 3)
	pinc, minc := cr&crPINC != 0, cr&crMINC != 0

	src, srcSize, srcInc := par, psize, pinc
	dst, dstSize, dstInc := m0ar, msize, minc
	if dir == 1 { // memory to peripheral
		src, srcSize, srcInc = m0ar, msize, minc
		dst, dstSize, dstInc = par, psize, pinc
	}
	for i := uint32(0); i < n; i++ {
		v, err := m.read(src, srcSize)
		if err != nil {
			return err
		}
		if err := m.write(dst, dstSize, v); err != nil {
			return err
		}
		if srcInc {
			src += srcSize
		}
		if dstInc {
			dst += dstSize
		}
	}
	return nil
}
