package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "separate horizontally",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "separate vertically",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 15, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edges",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 10, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 9.5, Y: 9.5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "contained",
			a:        Box{X: 0, Y: 0, W: 20, H: 20},
			b:        Box{X: 5, Y: 5, W: 2, H: 2},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxAt(t *testing.T) {
	b := BoxAt(200, 550, 60, 12)
	if b.X != 170 || b.Y != 544 {
		t.Errorf("BoxAt top-left = (%v, %v), expected (170, 544)", b.X, b.Y)
	}
	cx, cy := b.Center()
	if cx != 200 || cy != 550 {
		t.Errorf("Center() = (%v, %v), expected (200, 550)", cx, cy)
	}
	if b.Right() != 230 || b.Bottom() != 556 {
		t.Errorf("Right/Bottom = (%v, %v), expected (230, 556)", b.Right(), b.Bottom())
	}

	moved := b.Translate(10, -4)
	if moved.X != 180 || moved.Y != 540 {
		t.Errorf("Translate() = (%v, %v), expected (180, 540)", moved.X, moved.Y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(-1.5, 0, 10); got != 0 {
		t.Errorf("ClampF below = %v, expected 0", got)
	}
	if got := ClampF(12.5, 0, 10); got != 10 {
		t.Errorf("ClampF above = %v, expected 10", got)
	}
	if got := ClampF(3.25, 0, 10); got != 3.25 {
		t.Errorf("ClampF inside = %v, expected 3.25", got)
	}
}

func TestAbsRound(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned a wrong value")
	}
	if Round(2.5) != 3 || Round(-2.4) != -2 {
		t.Error("Round returned a wrong value")
	}
}

func TestInputFrameHorizontal(t *testing.T) {
	f := NewInputFrame()
	if f.Horizontal() != 0 {
		t.Errorf("empty frame Horizontal() = %d, expected 0", f.Horizontal())
	}

	f.Set(ActionLeft)
	if f.Horizontal() != -1 {
		t.Errorf("left Horizontal() = %d, expected -1", f.Horizontal())
	}

	f.Set(ActionRight)
	if f.Horizontal() != 0 {
		t.Errorf("left+right Horizontal() = %d, expected 0", f.Horizontal())
	}

	f.Clear()
	if f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("Clear should drop all actions")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero-value frame should report no actions")
	}
}
