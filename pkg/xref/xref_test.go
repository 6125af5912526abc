// SPDX-License-Identifier: MPL-2.0

package xref

import (
	"errors"
	"testing"

	"github.com/gedforge/gedforge/pkg/gederr"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"i1", "I1"},
		{"  john smith ", "JOHN_SMITH"},
		{"A  B", "A__B"},
		{"\tjohn smith\n", "JOHN_SMITH"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		if ok, errs := k.IsValid(); !ok {
			t.Errorf("%v.IsValid() = false: %v", k, errs)
		}
		got, ok := KindForTag(k.String())
		if !ok || got != k {
			t.Errorf("KindForTag(%q) = %v, %v", k.String(), got, ok)
		}
	}

	ok, errs := Kind(99).IsValid()
	if ok || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidKind) {
		t.Errorf("Kind(99).IsValid() = %v, %v", ok, errs)
	}
	if _, ok := KindForTag("NOTE"); ok {
		t.Error("KindForTag(NOTE) found a record kind")
	}
}

func TestMintCounterIsSharedAndIncreasing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	want := []string{"@1@", "@2@", "@3@"}
	kinds := []Kind{Individual, Family, Individual}
	for i, k := range kinds {
		x, err := r.Mint(k, "")
		if err != nil {
			t.Fatalf("Mint() unexpected error: %v", err)
		}
		if x.Fullname() != want[i] {
			t.Errorf("Mint() #%d = %s, want %s", i, x, want[i])
		}
		if x.Kind() != k {
			t.Errorf("Kind() = %v, want %v", x.Kind(), k)
		}
	}
}

func TestMintSkipsTakenNames(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Mint(Individual, "2"); err != nil {
		t.Fatal(err)
	}
	a, _ := r.Mint(Individual, "")
	b, _ := r.Mint(Individual, "")
	if a.Fullname() != "@1@" || b.Fullname() != "@3@" {
		t.Errorf("auto names = %s, %s; want @1@, @3@", a, b)
	}
}

func TestMintDuplicate(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Mint(Individual, "john smith"); err != nil {
		t.Fatal(err)
	}
	_, err := r.Mint(Family, "JOHN_SMITH")
	if !errors.Is(err, gederr.DuplicateXref) {
		t.Fatalf("second Mint() error = %v, want DuplicateXref", err)
	}
	var ge *gederr.Error
	if errors.As(err, &ge) && ge.Value != "@JOHN_SMITH@" {
		t.Errorf("Value = %q", ge.Value)
	}
	if _, err := r.Mint(Individual, "void"); !errors.Is(err, gederr.DuplicateXref) {
		t.Errorf("Mint(VOID) error = %v, want DuplicateXref", err)
	}
	if _, err := r.Mint(Kind(0), "x"); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("Mint(Kind(0)) error = %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestInitialPrefix(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if _, err := r.Mint(Individual, ""); err != nil {
		t.Fatal(err)
	}
	f, err := r.MintInitial(Family, "fam")
	if err != nil {
		t.Fatal(err)
	}
	if f.Fullname() != "@FAM2@" {
		t.Errorf("MintInitial() = %s, want @FAM2@", f)
	}

	p := NewRegistry(WithInitial("x"))
	a, _ := p.Mint(Source, "")
	b, _ := p.Mint(Source, "named")
	if a.Fullname() != "@X1@" || b.Fullname() != "@NAMED@" {
		t.Errorf("got %s, %s", a, b)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	x, _ := r.Mint(Repository, "r1")

	got, ok := r.Resolve("@R1@")
	if !ok || got != x {
		t.Errorf("Resolve(@R1@) = %v, %v", got, ok)
	}
	if _, ok := r.Resolve("@R2@"); ok {
		t.Error("Resolve(@R2@) found an unminted name")
	}
	v, ok := r.Resolve(VoidName)
	if !ok || !v.IsVoid() {
		t.Errorf("Resolve(VOID) = %v, %v", v, ok)
	}
	if !r.Contains(x) || !r.Contains(Void) {
		t.Error("Contains() = false for a known identifier")
	}
	other := NewRegistry()
	y, _ := other.Mint(Source, "r1")
	if r.Contains(y) {
		t.Error("Contains() = true for an identifier of another kind")
	}
}

func TestAllKeepsMintOrder(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		if _, err := r.Mint(Individual, n); err != nil {
			t.Fatal(err)
		}
	}
	all := r.All()
	for i, n := range names {
		if all[i].Name() != Normalize(n) {
			t.Errorf("All()[%d] = %s, want %s", i, all[i].Name(), Normalize(n))
		}
	}
	all[0] = Void
	if r.All()[0].IsVoid() {
		t.Error("All() exposed internal storage")
	}
	if Void.IsZero() || !(Xref{}).IsZero() {
		t.Error("IsZero() mismatch")
	}
}
