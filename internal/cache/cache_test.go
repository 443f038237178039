package cache

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/swayview/swayview/internal/imageio"
)

func TestPutEvictsHeadAtCapacity(t *testing.T) {
	c := New(2)
	a := imageio.Create("a")
	b := imageio.Create("b")
	d := imageio.Create("d")
	c.Put(a)
	c.Put(b)
	c.Put(d)

	got := c.Sources()
	want := []string{"b", "d"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sources() mismatch (-want +got):\n%s", diff)
	}
}

func TestZeroCapacityDiscardsPuts(t *testing.T) {
	c := New(0)
	c.Put(imageio.Create("a"))
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", c.Len())
	}
}

func TestTakeThenPutRestoresContents(t *testing.T) {
	c := New(3)
	a := imageio.Create("a")
	b := imageio.Create("b")
	c.Put(a)
	c.Put(b)

	taken := c.Take("a")
	if taken != a {
		t.Fatalf("Take(a) = %v, want %v", taken, a)
	}
	c.Put(taken)

	got := c.Sources()
	want := []string{"b", "a"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Sources() after take+put = %v, want %v", got, want)
	}
}

func TestTakeAbsentReturnsNil(t *testing.T) {
	c := New(2)
	if got := c.Take("missing"); got != nil {
		t.Fatalf("Take(missing) = %v, want nil", got)
	}
}
