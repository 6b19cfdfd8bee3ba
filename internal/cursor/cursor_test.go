package cursor

import "testing"

func index(t *testing.T, c Cursor) int {
	t.Helper()
	i, ok := c.Index()
	if !ok {
		t.Fatal("expected a selected index")
	}
	return i
}

func TestNew(t *testing.T) {
	if New(0).Valid() {
		t.Error("expected no selection over an empty list")
	}
	if got := index(t, New(3)); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestZeroValueIsAbsent(t *testing.T) {
	var c Cursor
	if _, ok := c.Index(); ok {
		t.Error("expected the zero cursor to be absent")
	}
}

func TestDownCycles(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for start := 0; start < n; start++ {
			c := At(start)
			for i := 0; i < n; i++ {
				c = c.Down(n)
			}
			if got := index(t, c); got != start {
				t.Errorf("n=%d start=%d: %d downs ended at %d", n, start, n, got)
			}
		}
	}
}

func TestUpDownInverse(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for start := 0; start < n; start++ {
			if got := index(t, At(start).Up(n).Down(n)); got != start {
				t.Errorf("up/down n=%d start=%d: got %d", n, start, got)
			}
			if got := index(t, At(start).Down(n).Up(n)); got != start {
				t.Errorf("down/up n=%d start=%d: got %d", n, start, got)
			}
		}
	}
}

func TestWrapScenario(t *testing.T) {
	c := At(2).Down(3)
	if got := index(t, c); got != 0 {
		t.Fatalf("down from last: expected 0, got %d", got)
	}

	c = c.Up(3)
	if got := index(t, c); got != 2 {
		t.Errorf("up from first: expected 2, got %d", got)
	}
}

func TestSingleItem(t *testing.T) {
	if got := index(t, At(0).Down(1)); got != 0 {
		t.Errorf("down: expected 0, got %d", got)
	}
	if got := index(t, At(0).Up(1)); got != 0 {
		t.Errorf("up: expected 0, got %d", got)
	}
}

func TestEmptyIsNoop(t *testing.T) {
	c := At(0).Clamp(0)
	if c.Valid() {
		t.Fatal("expected clamp to an empty list to clear the selection")
	}
	if c.Down(0).Valid() || c.Up(0).Valid() {
		t.Error("expected moves over an empty list to select nothing")
	}
}

func TestAbsentSelectsFirstWhenItemsAppear(t *testing.T) {
	var c Cursor
	for name, got := range map[string]Cursor{
		"down":  c.Down(2),
		"up":    c.Up(2),
		"clamp": c.Clamp(2),
	} {
		if i := index(t, got); i != 0 {
			t.Errorf("%s: expected 0, got %d", name, i)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name  string
		c     Cursor
		n     int
		want  int
		valid bool
	}{
		{"in range", At(1), 3, 1, true},
		{"past end", At(3), 3, 2, true},
		{"far past end", At(10), 2, 1, true},
		{"delete first of many", At(0), 2, 0, true},
		{"delete only item", At(0), 0, 0, false},
		{"negative", At(-1), 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, ok := tt.c.Clamp(tt.n).Index()
			if ok != tt.valid {
				t.Fatalf("valid = %v, want %v", ok, tt.valid)
			}
			if tt.valid && i != tt.want {
				t.Errorf("index = %d, want %d", i, tt.want)
			}
		})
	}
}

func TestStaleIndexClampedBeforeMoving(t *testing.T) {
	// the list shrank from 5 to 3 behind the cursor's back
	if got := index(t, At(4).Down(3)); got != 0 {
		t.Errorf("down: expected 0, got %d", got)
	}
	if got := index(t, At(4).Up(3)); got != 1 {
		t.Errorf("up: expected 1, got %d", got)
	}
}
