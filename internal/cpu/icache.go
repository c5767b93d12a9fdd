package cpu

// instructionTrap is the BREAK opcode used to pre-fill fresh and
// invalidated cache lines so that running stale instructions out of an
// unfilled line traps loudly instead of silently executing garbage.
const instructionTrap = Instruction(0x00bad0d)

// cacheLine is one of the 256 four-word lines of the direct-mapped
// instruction cache. tagValid packs the line's address tag into its
// upper 20 bits and, in bits [4:2], the index of the first word in
// the line known to be valid; see validIndex.
type cacheLine struct {
	tagValid uint32
	words    [4]Instruction
}

func newCacheLine() cacheLine {
	return cacheLine{
		tagValid: 0,
		words:    [4]Instruction{instructionTrap, instructionTrap, instructionTrap, instructionTrap},
	}
}

// tag returns the cacheline's address tag, bits [31:12].
func (c cacheLine) tag() uint32 {
	return c.tagValid & 0xfffff000
}

// validIndex returns the index of the first valid word in the line.
// The valid bits live in bits [4:2] so that setTagValid can simply mask
// the fetch PC without shuffling bits; a freshly invalidated line has
// this index pushed to 4, out of the [0,3] range, so every word reads
// as invalid.
func (c cacheLine) validIndex() uint32 {
	return (c.tagValid >> 2) & 0x7
}

// setTagValid records pc as the first valid address in the line.
func (c *cacheLine) setTagValid(pc uint32) {
	c.tagValid = pc & 0xfffff00c
}

// invalidate pushes the valid index out of range without touching the
// tag or contents of the line.
func (c *cacheLine) invalidate() {
	c.tagValid |= 0x10
}

func (c cacheLine) instruction(index uint32) Instruction {
	return c.words[index]
}

func (c *cacheLine) setInstruction(index uint32, instr Instruction) {
	c.words[index] = instr
}

// ICache is the direct-mapped, 256-line, 4-word-per-line instruction
// cache sitting in front of main memory. Every fetch outside KSEG1 goes
// through it while the cache is enabled; KSEG1 always bypasses it.
type ICache struct {
	lines [256]cacheLine
}

// NewICache returns a cache in its cold-boot state: every line tagged
// 0 and filled with trap instructions.
func NewICache() *ICache {
	ic := &ICache{}
	for i := range ic.lines {
		ic.lines[i] = newCacheLine()
	}
	return ic
}

func cacheLineIndex(pc uint32) uint32 {
	return (pc >> 4) & 0xff
}

func cacheWordIndex(pc uint32) uint32 {
	return (pc >> 2) & 3
}

// Line returns a pointer to the line backing address pc, for callers
// that need to inspect or directly mutate cache contents (fetch fills
// and cache-isolated maintenance writes).
func (ic *ICache) Line(pc uint32) *cacheLine {
	return &ic.lines[cacheLineIndex(pc)]
}

// InvalidateAll resets every line, used when the debugger forces the
// cache back to its cold-boot state.
func (ic *ICache) InvalidateAll() {
	for i := range ic.lines {
		ic.lines[i] = newCacheLine()
	}
}
