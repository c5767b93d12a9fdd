package memory

import "github.com/go-psx/psxcpu/internal/timekeeper"

// Timer mirrors one of the console's three hardware counters: a
// 16-bit counter, a target value used for IRQ-on-target and
// wrap-on-target modes, and a mode register whose bit layout this
// core does not implement yet.
type Timer struct {
	Counter uint16
	Target  uint16
	Mode    uint16
}

// Timers is the bank of three counters. Wiring them to the CPU's
// cycle clock (dot clock, hblank, system clock dividers) is out of
// scope for a CPU-core build; this stub exists so a bus implementation
// has somewhere to route the timer MMIO region instead of aliasing it
// onto RAM.
type Timers struct {
	Timers [3]Timer
}

// NewTimers returns a zeroed timer bank. Only Counter is defined at
// reset; Target and Mode are intentionally left unset because the
// exact power-on values are under-specified and no emulator this core
// was derived from documents them either.
func NewTimers() *Timers {
	return &Timers{}
}

// Sync accounts for elapsed cycles against the shared clock without
// yet implementing any counting, IRQ or mode-bit behavior. Mode
// register semantics (sync modes, IRQ on target/overflow, clock
// source select) are a distinct, larger spec than the CPU core this
// package serves and are deliberately left as a stub here.
func (t *Timers) Sync(tk *timekeeper.TimeKeeper) {
	tk.Sync(timekeeper.Timers)
}
