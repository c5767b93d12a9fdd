package timekeeper

import "testing"

func TestTickAdvancesNow(t *testing.T) {
	tk := New()
	tk.Tick(5)
	tk.Tick(3)
	if tk.Now() != 8 {
		t.Fatalf("Now() = %d, want 8", tk.Now())
	}
}

func TestSyncResetsTimesheet(t *testing.T) {
	tk := New()
	tk.Tick(10)
	if d := tk.Sync(Timers); d != 10 {
		t.Fatalf("first Sync = %d, want 10", d)
	}
	tk.Tick(4)
	if d := tk.Sync(Timers); d != 4 {
		t.Fatalf("second Sync = %d, want 4", d)
	}
	if d := tk.Sync(Timers); d != 0 {
		t.Fatalf("third Sync = %d, want 0", d)
	}
}

func TestPeekDoesNotReset(t *testing.T) {
	tk := New()
	tk.Tick(6)
	if d := tk.Peek(Timers); d != 6 {
		t.Fatalf("Peek = %d, want 6", d)
	}
	if d := tk.Peek(Timers); d != 6 {
		t.Fatalf("Peek again = %d, want 6 (unchanged)", d)
	}
	if d := tk.Sync(Timers); d != 6 {
		t.Fatalf("Sync after Peek = %d, want 6", d)
	}
}
