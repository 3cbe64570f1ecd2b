package vcol

import "testing"

func TestLoadStoreRoundTrip(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	p := Load(src)
	dst := make([]float64, Width)
	Store(p, dst)
	for i := range src {
		if dst[i] != src[i] {
			t.Errorf("lane %d: got %v, want %v", i, dst[i], src[i])
		}
	}
}

func TestLoadShortSlice(t *testing.T) {
	p := Load([]float64{1, 2, 3})
	if p[0] != 1 || p[2] != 3 {
		t.Errorf("leading lanes not loaded: %v", p)
	}
	for i := 3; i < Width; i++ {
		if p[i] != 0 {
			t.Errorf("lane %d: expected zero fill, got %v", i, p[i])
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := Load([]float64{1, 2, 3, 4, 5, 6, 7, 8})
	b := Set(2.0)

	tests := []struct {
		name string
		got  Pack[float64]
		want func(i int) float64
	}{
		{"add", Add(a, b), func(i int) float64 { return float64(i+1) + 2 }},
		{"sub", Sub(a, b), func(i int) float64 { return float64(i+1) - 2 }},
		{"mul", Mul(a, b), func(i int) float64 { return float64(i+1) * 2 }},
		{"div", Div(a, b), func(i int) float64 { return float64(i+1) / 2 }},
		{"neg", Neg(a), func(i int) float64 { return -float64(i + 1) }},
		{"scale", Scale(a, 3), func(i int) float64 { return float64(i+1) * 3 }},
		{"addscalar", AddScalar(a, 10), func(i int) float64 { return float64(i+1) + 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < Width; i++ {
				if tt.got[i] != tt.want(i) {
					t.Errorf("lane %d: got %v, want %v", i, tt.got[i], tt.want(i))
				}
			}
		})
	}
}

func TestSlideLanes(t *testing.T) {
	p := Load([]float64{1, 2, 3, 4, 5, 6, 7, 8})

	up := SlideUpLanes(p, 1)
	if up[0] != 0 {
		t.Errorf("SlideUpLanes lane 0: got %v, want 0", up[0])
	}
	for i := 1; i < Width; i++ {
		if up[i] != p[i-1] {
			t.Errorf("SlideUpLanes lane %d: got %v, want %v", i, up[i], p[i-1])
		}
	}

	down := SlideDownLanes(p, 1)
	if down[Width-1] != 0 {
		t.Errorf("SlideDownLanes last lane: got %v, want 0", down[Width-1])
	}
	for i := 0; i < Width-1; i++ {
		if down[i] != p[i+1] {
			t.Errorf("SlideDownLanes lane %d: got %v, want %v", i, down[i], p[i+1])
		}
	}
}

func TestBlend(t *testing.T) {
	a := Set(1.0)
	b := Set(2.0)
	idx := Load([]float64{0, 1, 2, 3, 4, 5, 6, 7})
	mask := LessThan(idx, Set(3.0))

	out := Blend(mask, a, b)
	for i := 0; i < Width; i++ {
		want := 2.0
		if i < 3 {
			want = 1.0
		}
		if out[i] != want {
			t.Errorf("lane %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestMaskOps(t *testing.T) {
	idx := Load([]float64{0, 1, 2, 3, 4, 5, 6, 7})
	ge1 := Not(LessThan(idx, Set(1.0)))
	le6 := Not(GreaterThan(idx, Set(6.0)))
	interior := And(ge1, le6)
	for i := 0; i < Width; i++ {
		want := i >= 1 && i <= 6
		if interior[i] != want {
			t.Errorf("lane %d: got %v, want %v", i, interior[i], want)
		}
	}
}

func TestPow(t *testing.T) {
	p := Pow(Set(4.0), 0.5)
	for i := 0; i < Width; i++ {
		if p[i] != 2.0 {
			t.Errorf("lane %d: got %v, want 2", i, p[i])
		}
	}
}
