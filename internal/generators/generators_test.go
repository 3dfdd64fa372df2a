package generators

import (
	"errors"
	"strings"
	"testing"
)

// scripted returns an intN that replays values in order, reducing each
// modulo n to stay in range.
func scripted(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)] % n
		i++
		return v
	}
}

func TestCodename_Composition(t *testing.T) {
	// Draw 0 then 0: first prefix, first suffix.
	g := NewWithIntN(scripted(0, 0))
	if got := g.Codename(); got != "The Nightingale" {
		t.Errorf("Codename() = %q, want %q", got, "The Nightingale")
	}

	// Last prefix, last suffix.
	g = NewWithIntN(scripted(15, 47))
	if got := g.Codename(); got != "Silver Legacy" {
		t.Errorf("Codename() = %q, want %q", got, "Silver Legacy")
	}
}

func TestCodename_SpaceSize(t *testing.T) {
	if len(codenamePrefixes) != 16 {
		t.Errorf("prefix set size = %d, want 16", len(codenamePrefixes))
	}
	if len(codenameSuffixes) != 48 {
		t.Errorf("suffix set size = %d, want 48", len(codenameSuffixes))
	}
}

func TestUniqueCodename_FirstDrawFree(t *testing.T) {
	g := NewWithIntN(scripted(0, 0))
	checks := 0
	codename, err := g.UniqueCodename(func(string) (bool, error) {
		checks++
		return false, nil
	})
	if err != nil {
		t.Fatalf("UniqueCodename() error = %v", err)
	}
	if codename != "The Nightingale" {
		t.Errorf("UniqueCodename() = %q, want %q", codename, "The Nightingale")
	}
	if checks != 1 {
		t.Errorf("existence checks = %d, want 1", checks)
	}
}

// One free slot left: nine draws hit taken codenames, the tenth finds the
// free one, exactly at the attempt bound.
func TestUniqueCodename_LastAttemptSucceeds(t *testing.T) {
	free := "Silver Legacy"
	draws := make([]int, 0, 20)
	for i := 0; i < 9; i++ {
		draws = append(draws, 0, 0)
	}
	draws = append(draws, 15, 47)
	g := NewWithIntN(scripted(draws...))

	checks := 0
	codename, err := g.UniqueCodename(func(candidate string) (bool, error) {
		checks++
		return candidate != free, nil
	})
	if err != nil {
		t.Fatalf("UniqueCodename() error = %v", err)
	}
	if codename != free {
		t.Errorf("UniqueCodename() = %q, want %q", codename, free)
	}
	if checks != 10 {
		t.Errorf("existence checks = %d, want 10", checks)
	}
}

// Fully taken namespace: exhaustion must be reported after exactly the
// attempt bound, never a fabricated duplicate.
func TestUniqueCodename_Exhausted(t *testing.T) {
	g := NewWithIntN(scripted(0, 0))
	checks := 0
	_, err := g.UniqueCodename(func(string) (bool, error) {
		checks++
		return true, nil
	})
	if !errors.Is(err, ErrCodenameExhausted) {
		t.Fatalf("UniqueCodename() error = %v, want ErrCodenameExhausted", err)
	}
	if checks != 10 {
		t.Errorf("existence checks = %d, want 10", checks)
	}
}

func TestUniqueCodename_CheckErrorPropagates(t *testing.T) {
	g := NewWithIntN(scripted(0, 0))
	boom := errors.New("store unavailable")
	_, err := g.UniqueCodename(func(string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("UniqueCodename() error = %v, want %v", err, boom)
	}
}

func TestConfirmationCode(t *testing.T) {
	// Scripted draws spell out the first six alphabet positions.
	g := NewWithIntN(scripted(0, 1, 2, 25, 26, 35))
	if got := g.ConfirmationCode(); got != "ABCZ09" {
		t.Errorf("ConfirmationCode() = %q, want %q", got, "ABCZ09")
	}

	// Real source: length and alphabet hold for every draw.
	g = New()
	for i := 0; i < 100; i++ {
		code := g.ConfirmationCode()
		if len(code) != 6 {
			t.Fatalf("ConfirmationCode() length = %d, want 6", len(code))
		}
		for _, ch := range code {
			if !strings.ContainsRune(confirmationAlphabet, ch) {
				t.Fatalf("ConfirmationCode() = %q contains %q outside [A-Z0-9]", code, ch)
			}
		}
	}
}

func TestSuccessProbability_Range(t *testing.T) {
	g := New()
	for i := 0; i < 1000; i++ {
		p := g.SuccessProbability()
		if p < 65 || p > 99 {
			t.Fatalf("SuccessProbability() = %d, want within [65, 99]", p)
		}
	}

	// Boundary draws.
	g = NewWithIntN(scripted(0))
	if p := g.SuccessProbability(); p != 65 {
		t.Errorf("SuccessProbability() low draw = %d, want 65", p)
	}
	g = NewWithIntN(scripted(34))
	if p := g.SuccessProbability(); p != 99 {
		t.Errorf("SuccessProbability() high draw = %d, want 99", p)
	}
}
