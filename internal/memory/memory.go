/*
 * Memory - RAM, BIOS window and cache-control register.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package memory implements the address map the CPU core runs
// against: mirrored RAM at the bottom of the map, a BIOS ROM window,
// and the single cache-control register the BIOS pokes to turn the
// instruction cache on and set tag-test mode.
package memory

import "encoding/binary"

// Address map regions, masked to their physical size; KUSEG/KSEG0/KSEG1
// all alias the same underlying RAM and ROM.
const (
	ramSize   = 2 * 1024 * 1024
	biosSize  = 512 * 1024
	biosBase  = 0x1fc00000
	regionMap = 0x1fffffff
)

// CacheControl is the single memory-mapped register (address
// 0xfffe0130 in KSEG2) the BIOS uses to enable the instruction cache
// and put it into tag-test mode for self-checks.
type CacheControl uint32

func (cc CacheControl) icacheEnabled() bool {
	return cc&(1<<11) != 0
}

func (cc CacheControl) tagTestMode() bool {
	return cc&(1<<2) != 0
}

// Interconnect is the bus the CPU core talks to: it owns RAM, an
// optional BIOS image, and the cache-control register.
type Interconnect struct {
	ram  []byte
	bios []byte
	cc   CacheControl
}

// NewInterconnect returns a bus with ramSizeKB kilobytes of RAM (0
// means the default 2MB) and bios loaded at the top of the map, if
// non-nil. A missing BIOS leaves that window reading all 0xff, which
// decodes to an illegal instruction, which is the correct behavior for
// "no firmware present" rather than silently running garbage.
func NewInterconnect(ramSizeKB int, bios []byte) *Interconnect {
	size := ramSize
	if ramSizeKB > 0 {
		size = ramSizeKB * 1024
	}
	ic := &Interconnect{ram: make([]byte, size)}
	if bios != nil {
		ic.bios = bios
	} else {
		ic.bios = make([]byte, biosSize)
		for i := range ic.bios {
			ic.bios[i] = 0xff
		}
	}
	return ic
}

func mask(addr uint32) uint32 {
	return addr & regionMap
}

// region classifies a masked address into either the RAM array, the
// BIOS array, or neither (unmapped I/O, read as all ones: nothing
// in a CPU-core-only build has peripherals behind it yet).
func (ic *Interconnect) region(addr uint32) (buf []byte, offset uint32, ok bool) {
	m := mask(addr)
	switch {
	case m < uint32(len(ic.ram)):
		return ic.ram, m, true
	case m >= biosBase && m < biosBase+uint32(len(ic.bios)):
		return ic.bios, m - biosBase, true
	default:
		return nil, 0, false
	}
}

func (ic *Interconnect) LoadInstruction(addr uint32) uint32 {
	return ic.LoadWord(addr)
}

func (ic *Interconnect) LoadByte(addr uint32) uint8 {
	buf, off, ok := ic.region(addr)
	if !ok {
		return 0xff
	}
	return buf[off]
}

func (ic *Interconnect) LoadHalf(addr uint32) uint16 {
	buf, off, ok := ic.region(addr)
	if !ok || off+2 > uint32(len(buf)) {
		return 0xffff
	}
	return binary.LittleEndian.Uint16(buf[off:])
}

func (ic *Interconnect) LoadWord(addr uint32) uint32 {
	buf, off, ok := ic.region(addr)
	if !ok || off+4 > uint32(len(buf)) {
		return 0xffffffff
	}
	return binary.LittleEndian.Uint32(buf[off:])
}

func (ic *Interconnect) StoreByte(addr uint32, v uint8) {
	buf, off, ok := ic.region(addr)
	if !ok || &buf[0] == &ic.bios[0] {
		return
	}
	buf[off] = v
}

func (ic *Interconnect) StoreHalf(addr uint32, v uint16) {
	buf, off, ok := ic.region(addr)
	if !ok || len(buf) == len(ic.bios) || off+2 > uint32(len(buf)) {
		return
	}
	binary.LittleEndian.PutUint16(buf[off:], v)
}

func (ic *Interconnect) StoreWord(addr uint32, v uint32) {
	m := mask(addr)
	if m == 0x1fffe130 || m == 0xfffe130 || m == mask(0xfffe0130) {
		ic.cc = CacheControl(v)
		return
	}
	buf, off, ok := ic.region(addr)
	if !ok || len(buf) == len(ic.bios) || off+4 > uint32(len(buf)) {
		return
	}
	binary.LittleEndian.PutUint32(buf[off:], v)
}

// SetCacheControl forces the initial state of the cache-control
// register, for a BIOS-less boot where nothing will ever write it
// itself; a real boot leaves this at zero and lets the BIOS set it.
func (ic *Interconnect) SetCacheControl(enabled, tagTest bool) {
	var cc CacheControl
	if enabled {
		cc |= 1 << 11
	}
	if tagTest {
		cc |= 1 << 2
	}
	ic.cc = cc
}

func (ic *Interconnect) ICacheEnabled() bool {
	return ic.cc.icacheEnabled()
}

func (ic *Interconnect) ICacheTagTestMode() bool {
	return ic.cc.tagTestMode()
}

// LoadBlob copies data into RAM starting at addr, for tests and for a
// BIOS-less boot path that seeds RAM directly with a program image.
func (ic *Interconnect) LoadBlob(addr uint32, data []byte) {
	buf, off, ok := ic.region(addr)
	if !ok {
		return
	}
	copy(buf[off:], data)
}
