package wide

import "testing"

func TestSplatF64(t *testing.T) {
	v := SplatF64(2.5)
	for i, got := range v {
		if got != 2.5 {
			t.Errorf("SplatF64(2.5)[%d] = %v, want 2.5", i, got)
		}
	}
}

func TestF64x4_Arithmetic(t *testing.T) {
	a := F64x4{1, 2, 3, 4}
	b := F64x4{5, 6, 7, 8}

	tests := []struct {
		name string
		got  F64x4
		want F64x4
	}{
		{"add", a.Add(b), F64x4{6, 8, 10, 12}},
		{"sub", b.Sub(a), F64x4{4, 4, 4, 4}},
		{"mul", a.Mul(b), F64x4{5, 12, 21, 32}},
		{"swap pairs", a.SwapPairs(), F64x4{2, 1, 4, 3}},
		{"hadd", a.HAdd(b), F64x4{3, 11, 7, 15}},
		{"hsub", a.HSub(b), F64x4{-1, -1, -1, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestF64x4_ComplexSquare(t *testing.T) {
	tests := []struct {
		name               string
		re0, im0, re1, im1 float64
	}{
		{"units", 1, 0, 0, 1},
		{"mixed", -2, 1, 0.25, -0.75},
		{"negative", -1.5, -0.5, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pair(tt.re0, tt.im0, tt.re1, tt.im1).ComplexSquare()

			want0 := complex(tt.re0, tt.im0) * complex(tt.re0, tt.im0)
			want1 := complex(tt.re1, tt.im1) * complex(tt.re1, tt.im1)

			re, im := got.Low()
			if re != real(want0) || im != imag(want0) {
				t.Errorf("low = (%v, %v), want (%v, %v)", re, im, real(want0), imag(want0))
			}
			re, im = got.High()
			if re != real(want1) || im != imag(want1) {
				t.Errorf("high = (%v, %v), want (%v, %v)", re, im, real(want1), imag(want1))
			}
		})
	}
}

func TestF64x4_SquaredMagnitudes(t *testing.T) {
	got := Pair(3, 4, -1, 2).SquaredMagnitudes()
	want := F64x4{25, 0, 5, 0}
	if got != want {
		t.Errorf("SquaredMagnitudes() = %v, want %v", got, want)
	}
}

func BenchmarkF64x4_ComplexSquare(b *testing.B) {
	v := Pair(-0.5, 0.25, 0.3, -0.6)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = v.ComplexSquare().Mul(SplatF64(0.5))
	}
	_ = v
}
