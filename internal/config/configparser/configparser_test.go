package configparser

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	name := filepath.Join(dir, "psx.cfg")
	if err := os.WriteFile(name, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return name
}

func TestLoadBasic(t *testing.T) {
	name := writeConfig(t, `
# comment line
bios "/opt/psx/scph1001.bin"
ram_size 2048
icache_enabled true
icache_tag_test false
debug CMD,ICACHE
logfile trace.log
`)
	c, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.BIOSPath != "/opt/psx/scph1001.bin" {
		t.Errorf("BIOSPath = %q", c.BIOSPath)
	}
	if c.RAMSizeKB != 2048 {
		t.Errorf("RAMSizeKB = %d", c.RAMSizeKB)
	}
	if !c.ICacheEnabled || c.ICacheTagTest {
		t.Errorf("icache flags wrong: %+v", c)
	}
	if c.DebugMask != "CMD,ICACHE" {
		t.Errorf("DebugMask = %q", c.DebugMask)
	}
	if c.LogFile != "trace.log" {
		t.Errorf("LogFile = %q", c.LogFile)
	}
}

func TestLoadUnknownKeyGoesToExtra(t *testing.T) {
	name := writeConfig(t, "future_option 1\n")
	c, err := Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Extra) != 1 || c.Extra[0].Name != "future_option" {
		t.Errorf("Extra = %+v", c.Extra)
	}
}

func TestLoadBadRAMSize(t *testing.T) {
	name := writeConfig(t, "ram_size not-a-number\n")
	if _, err := Load(name); err == nil {
		t.Fatalf("expected error for bad ram_size")
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.RAMSizeKB != 2048 || !c.ICacheEnabled {
		t.Errorf("unexpected default: %+v", c)
	}
}
