package dummy

import "testing"

func TestGenerator_Sequence(t *testing.T) {
	g := NewGenerator("dummy", 1)
	for i, want := range []string{"dummy1", "dummy2", "dummy3"} {
		if got := g.Next(); got != want {
			t.Errorf("name %d = %q, want %q", i, got, want)
		}
	}
	if g.Issued() != 3 {
		t.Errorf("Issued() = %d, want 3", g.Issued())
	}
}

func TestGenerator_SkipsReserved(t *testing.T) {
	g := NewGenerator("t", 0)
	g.Reserve("t0", "t2", "x")

	if got := g.Next(); got != "t1" {
		t.Errorf("first = %q, want t1", got)
	}
	if got := g.Next(); got != "t3" {
		t.Errorf("second = %q, want t3", got)
	}
	if !g.IsReserved("t1") {
		t.Error("issued names must be reserved")
	}
}

func TestGenerator_Unique(t *testing.T) {
	g := NewGenerator("d", 1)
	g.Reserve("d5", "d10")
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		name := g.Next()
		if seen[name] || name == "d5" || name == "d10" {
			t.Fatalf("duplicate or reserved name %q", name)
		}
		seen[name] = true
	}
}

func TestGenerator_DefaultPrefix(t *testing.T) {
	g := NewGenerator("", 1)
	if g.Prefix() != "dummy" {
		t.Errorf("Prefix() = %q, want dummy", g.Prefix())
	}
}
