package memory

import "testing"

func TestRAMRoundTrip(t *testing.T) {
	ic := NewInterconnect(2048, nil)
	ic.StoreWord(0x00000010, 0x12345678)
	if v := ic.LoadWord(0x00000010); v != 0x12345678 {
		t.Fatalf("LoadWord = %#x, want %#x", v, 0x12345678)
	}
	if v := ic.LoadByte(0x00000010); v != 0x78 {
		t.Fatalf("LoadByte = %#x, want %#x (little endian)", v, 0x78)
	}
}

func TestRAMAliasesAcrossSegments(t *testing.T) {
	ic := NewInterconnect(2048, nil)
	ic.StoreWord(0x00000020, 0xcafebabe)
	if v := ic.LoadWord(0x80000020); v != 0xcafebabe {
		t.Fatalf("KSEG0 alias = %#x, want %#x", v, 0xcafebabe)
	}
	if v := ic.LoadWord(0xa0000020); v != 0xcafebabe {
		t.Fatalf("KSEG1 alias = %#x, want %#x", v, 0xcafebabe)
	}
}

func TestBIOSReadOnly(t *testing.T) {
	bios := make([]byte, biosSize)
	bios[0] = 0x42
	ic := NewInterconnect(2048, bios)
	ic.StoreByte(biosBase, 0x99)
	if v := ic.LoadByte(biosBase); v != 0x42 {
		t.Fatalf("BIOS write should be ignored, got %#x", v)
	}
}

func TestMissingBIOSReadsAllOnes(t *testing.T) {
	ic := NewInterconnect(2048, nil)
	if v := ic.LoadWord(biosBase); v != 0xffffffff {
		t.Fatalf("missing BIOS = %#x, want all-ones", v)
	}
}

func TestCacheControlRegister(t *testing.T) {
	ic := NewInterconnect(2048, nil)
	if ic.ICacheEnabled() {
		t.Fatalf("icache should start disabled")
	}
	ic.StoreWord(0x1fffe130, 1<<11)
	if !ic.ICacheEnabled() {
		t.Fatalf("icache should be enabled after cache-control write")
	}
	if ic.ICacheTagTestMode() {
		t.Fatalf("tag-test mode should be off")
	}
}

func TestLoadBlob(t *testing.T) {
	ic := NewInterconnect(2048, nil)
	ic.LoadBlob(0x100, []byte{1, 2, 3, 4})
	if v := ic.LoadWord(0x100); v != 0x04030201 {
		t.Fatalf("LoadBlob/LoadWord = %#x", v)
	}
}
