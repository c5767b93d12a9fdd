package cpu

import (
	"testing"

	"github.com/go-psx/psxcpu/internal/memory"
)

// nopDebugger ignores every callback. The debugger package's NoOp is
// not usable here because that package imports cpu.
type nopDebugger struct{}

func (nopDebugger) PCChange(c *CPU)                 {}
func (nopDebugger) MemoryRead(c *CPU, addr uint32)  {}
func (nopDebugger) MemoryWrite(c *CPU, addr uint32) {}

// Every golden program below is written starting at 0x80100000 and
// ends with a jump to a sentinel address outside of RAM; runUntil
// stops as soon as the core's PC lands there, the same convention the
// reference test suite uses to mark "the program is done".
const testEntry = 0x80100000
const sentinelMask = 0x0fffffff
const sentinelPC = 0xeadbee0
const testTimeout = 1_000_000

func newTestCPU(t *testing.T) (*CPU, *memory.Interconnect) {
	t.Helper()
	ic := memory.NewInterconnect(0, nil)
	c := NewCPU(ic, nil)
	c.ForcePC(testEntry)
	for i := RegisterIndex(1); i < 32; i++ {
		c.SetReg(i, 0)
	}
	return c, ic
}

func loadProgram(ic *memory.Interconnect, addr uint32, words []uint32) {
	for i, w := range words {
		ic.StoreWord(addr+uint32(i*4), w)
	}
}

func runUntil(t *testing.T, c *CPU) {
	t.Helper()
	dbg := nopDebugger{}
	for i := 0; i < testTimeout; i++ {
		if c.PC()&sentinelMask == sentinelPC {
			return
		}
		c.Step(dbg)
	}
	t.Fatalf("program did not reach sentinel pc within %d steps, pc=%#x", testTimeout, c.PC())
}

func TestBEQ(t *testing.T) {
	c, ic := newTestCPU(t)
	c.SetReg(1, 0x1)
	c.SetReg(2, 0x2)
	c.SetReg(3, 0xffffffff)
	c.SetReg(4, 0xffffffff)
	loadProgram(ic, testEntry, []uint32{
		0x10220005, 0x00000000, 0x200a0001, 0x10640004, 0x00000000,
		0x200b0001, 0x200a0002, 0x00000000, 0x00000000, 0x0bab6fb8,
		0x00000000,
	})
	runUntil(t, c)
	if got := c.Regs()[10]; got != 0x1 {
		t.Errorf("regs[10] = %#x, want 0x1", got)
	}
	if got := c.Regs()[11]; got != 0 {
		t.Errorf("regs[11] = %#x, want 0", got)
	}
}

func TestBranchInBranchDelay(t *testing.T) {
	c, ic := newTestCPU(t)
	loadProgram(ic, testEntry, []uint32{
		0x10000002, 0x10000004, 0x20030001, 0x20010001, 0x10000002,
		0x00000000, 0x20020001, 0x00000000, 0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	regs := c.Regs()
	if regs[1] != 0x1 {
		t.Errorf("regs[1] = %#x, want 0x1", regs[1])
	}
	if regs[2] != 0 {
		t.Errorf("regs[2] = %#x, want 0", regs[2])
	}
	if regs[3] != 0 {
		t.Errorf("regs[3] = %#x, want 0", regs[3])
	}
}

func TestLWLAndLWRLoadDelay(t *testing.T) {
	c, ic := newTestCPU(t)
	ic.StoreWord(0, 0x76543210)
	ic.StoreWord(4, 0xfedcba98)
	loadProgram(ic, testEntry, []uint32{
		0x2401ffff, 0x98010002, 0x88010005, 0x00201021, 0x2403ffff,
		0x98030002, 0x00000000, 0x88030005, 0x00602021, 0x2405ffff,
		0x88050005, 0x00000000, 0x98050002, 0x00a03021, 0x2407ffff,
		0x8c070004, 0x88070002, 0x00e04021, 0x2409ffff, 0x8c090004,
		0x00000000, 0x88090002, 0x01205021, 0x240bffff, 0x8c0b0004,
		0x980b0002, 0x01606021, 0x240dffff, 0x8c0d0004, 0x00000000,
		0x980d0002, 0x01a07021, 0x3c0f067e, 0x35ef067e, 0x488fc800,
		0x240fffff, 0x480fc800, 0x880f0001, 0x01e08021, 0x2411ffff,
		0x4811c800, 0x00000000, 0x98110001, 0x02209021, 0x0bab6fb8,
		0x00000000,
	})
	runUntil(t, c)
	want := map[int]uint32{
		1: 0xba987654, 2: 0xffffffff, 3: 0xba987654, 4: 0xffff7654,
		5: 0xba987654, 6: 0xba98ffff, 7: 0x54321098, 8: 0xffffffff,
		9: 0x54321098, 10: 0xfedcba98, 11: 0xfedc7654, 12: 0xffffffff,
		13: 0xfedc7654, 14: 0xfedcba98, 15: 0x3210067e, 16: 0xffffffff,
		17: 0x06765432, 18: 0x067e067e,
	}
	regs := c.Regs()
	for i, v := range want {
		if regs[i] != v {
			t.Errorf("regs[%d] = %#x, want %#x", i, regs[i], v)
		}
	}
}

func TestAdd1(t *testing.T) {
	c, ic := newTestCPU(t)
	c.SetReg(1, 0xa)
	c.SetReg(2, 0xfffffff1)
	loadProgram(ic, testEntry, []uint32{
		0x00201820, 0x00222020, 0x00412820, 0x00423020, 0x0bab6fb8,
		0x00000000,
	})
	runUntil(t, c)
	want := map[int]uint32{1: 0xa, 2: 0xfffffff1, 3: 0xa, 4: 0xfffffffb, 5: 0xfffffffb, 6: 0xffffffe2}
	regs := c.Regs()
	for i, v := range want {
		if regs[i] != v {
			t.Errorf("regs[%d] = %#x, want %#x", i, regs[i], v)
		}
	}
}

func TestArithmeticBranchingTest(t *testing.T) {
	c, ic := newTestCPU(t)
	c.SetReg(2, 0xdead)
	c.SetReg(3, 0)
	c.SetReg(5, 0x1)
	loadProgram(ic, testEntry, []uint32{
		0x00451023, 0x24630001, 0x1c40fffd, 0x00000000, 0x0bab6fb8,
		0x00000000,
	})
	runUntil(t, c)
	regs := c.Regs()
	if regs[2] != 0 {
		t.Errorf("regs[2] = %#x, want 0", regs[2])
	}
	if regs[3] != 0xdead {
		t.Errorf("regs[3] = %#x, want 0xdead", regs[3])
	}
	if regs[5] != 0x1 {
		t.Errorf("regs[5] = %#x, want 0x1", regs[5])
	}
}

func TestBLTZALAndBGEZAL(t *testing.T) {
	c, ic := newTestCPU(t)
	loadProgram(ic, testEntry, []uint32{
		0x3c05ffff, 0x34a5ffff, 0x00000821, 0x0000f821, 0x04100002,
		0x00000000, 0x34010001, 0x001f102b, 0x3c03ffff, 0x3463ffff,
		0x0000f821, 0x04710002, 0x00000000, 0x34030001, 0x001f202b,
		0x3c05ffff, 0x34a5ffff, 0x0000f821, 0x04b00002, 0x00000000,
		0x34050001, 0x001f302b, 0x00003821, 0x0000f821, 0x04110002,
		0x00000000, 0x34070001, 0x001f402b, 0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	want := map[int]uint32{1: 0x1, 2: 0x1, 3: 0x1, 4: 0x1, 5: 0xffffffff, 6: 0x1, 7: 0, 8: 0x1}
	regs := c.Regs()
	for i, v := range want {
		if regs[i] != v {
			t.Errorf("regs[%d] = %#x, want %#x", i, regs[i], v)
		}
	}
}

func TestUnalignedLoads(t *testing.T) {
	c, ic := newTestCPU(t)
	ic.StoreWord(0xbee0, 0xdeadbeef)
	c.SetReg(30, 0xbee1)
	loadProgram(ic, testEntry, []uint32{
		0x83c10000, 0x93c20000, 0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	regs := c.Regs()
	if regs[1] != 0xffffffbe {
		t.Errorf("regs[1] = %#x, want 0xffffffbe", regs[1])
	}
	if regs[2] != 0xbe {
		t.Errorf("regs[2] = %#x, want 0xbe", regs[2])
	}
	if regs[3] != 0 {
		t.Errorf("regs[3] = %#x, want 0", regs[3])
	}
	if regs[4] != 0 {
		t.Errorf("regs[4] = %#x, want 0", regs[4])
	}
}

func TestLoadDelayForCop(t *testing.T) {
	c, ic := newTestCPU(t)
	c.SetReg(2, 0x80110000)
	ic.StoreWord(0x80110000, 0xdeadbeef)
	loadProgram(ic, testEntry, []uint32{
		0x8c430000, 0x00000000, 0x4803c800, 0x10600004, 0x00000000,
		0x20010001, 0x0804000a, 0x00000000, 0x20010002, 0x0804000a,
		0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	regs := c.Regs()
	if regs[3] != 0 {
		t.Errorf("regs[3] = %#x, want 0", regs[3])
	}
	if regs[1] != 0x1 {
		t.Errorf("regs[1] = %#x, want 0x1", regs[1])
	}
}

func TestSWLAndSWR(t *testing.T) {
	c, ic := newTestCPU(t)
	c.SetReg(1, 0)
	c.SetReg(2, 0x76543210)
	c.SetReg(3, 0xfedcba98)
	loadProgram(ic, testEntry, []uint32{
		0xac220000, 0xa8230000, 0x24210004, 0xac220000, 0xa8230001,
		0x24210004, 0xac220000, 0xa8230002, 0x24210004, 0xac220000,
		0xa8230003, 0x24210004, 0xac220000, 0xb8230000, 0x24210004,
		0xac220000, 0xb8230001, 0x24210004, 0xac220000, 0xb8230002,
		0x24210004, 0xac220000, 0xb8230003, 0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	want := map[uint32]uint32{
		0x0:  0x765432fe,
		0x4:  0x7654fedc,
		0x8:  0x76fedcba,
		0xc:  0xfedcba98,
		0x10: 0xfedcba98,
		0x14: 0xdcba9810,
		0x18: 0xba983210,
		0x1c: 0x98543210,
	}
	for addr, v := range want {
		if got := ic.LoadWord(addr); got != v {
			t.Errorf("mem[%#x] = %#x, want %#x", addr, got, v)
		}
	}
}

func TestMultipleLoadCancelling(t *testing.T) {
	c, ic := newTestCPU(t)
	ic.StoreWord(0, 0x7001a7e)
	c.SetReg(1, 0x600dc0de)
	loadProgram(ic, testEntry, []uint32{
		0x40016000, 0x8c010000, 0x40017800, 0x8c010000, 0x8c010000,
		0x00201021, 0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	regs := c.Regs()
	if regs[1] != 0x7001a7e {
		t.Errorf("regs[1] = %#x, want 0x7001a7e", regs[1])
	}
	if regs[2] != 0x600dc0de {
		t.Errorf("regs[2] = %#x, want 0x600dc0de", regs[2])
	}
}

func TestLWLAndLWR(t *testing.T) {
	c, ic := newTestCPU(t)
	ic.StoreWord(0, 0x76543210)
	ic.StoreWord(4, 0xfedcba98)
	loadProgram(ic, testEntry, []uint32{
		0x98010000, 0x88010003, 0x98020001, 0x88020004, 0x98030002,
		0x88030005, 0x98040003, 0x88040006, 0x98050004, 0x88050007,
		0x88060003, 0x98060000, 0x88070004, 0x98070001, 0x88080005,
		0x98080002, 0x88090006, 0x98090003, 0x880a0007, 0x980a0004,
		0x240bffff, 0x880b0000, 0x240cffff, 0x980c0000, 0x240dffff,
		0x880d0001, 0x240effff, 0x980e0001, 0x240fffff, 0x880f0002,
		0x2410ffff, 0x98100002, 0x2411ffff, 0x88110003, 0x2412ffff,
		0x98120003, 0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	want := map[int]uint32{
		1: 0x76543210, 2: 0x98765432, 3: 0xba987654, 4: 0xdcba9876,
		5: 0xfedcba98, 6: 0x76543210, 7: 0x98765432, 8: 0xba987654,
		9: 0xdcba9876, 10: 0xfedcba98, 11: 0x10ffffff, 12: 0x76543210,
		13: 0x3210ffff, 14: 0xff765432, 15: 0x543210ff, 16: 0xffff7654,
		17: 0x76543210, 18: 0xffffff76,
	}
	regs := c.Regs()
	for i, v := range want {
		if regs[i] != v {
			t.Errorf("regs[%d] = %#x, want %#x", i, regs[i], v)
		}
	}
}

func TestLHAndLBSignExtension(t *testing.T) {
	c, ic := newTestCPU(t)
	ic.StoreWord(0, 0x8080)
	loadProgram(ic, testEntry, []uint32{
		0x84010000, 0x94020000, 0x80030000, 0x90040000, 0x00000000,
		0x0bab6fb8, 0x00000000,
	})
	runUntil(t, c)
	want := map[int]uint32{1: 0xffff8080, 2: 0x8080, 3: 0xffffff80, 4: 0x80}
	regs := c.Regs()
	for i, v := range want {
		if regs[i] != v {
			t.Errorf("regs[%d] = %#x, want %#x", i, regs[i], v)
		}
	}
}
