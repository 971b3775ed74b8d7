package wide

// F64x4 represents 4 float64 lanes, read as two (re, im) pairs.
type F64x4 [4]float64

// SplatF64 creates an F64x4 with all lanes set to n.
func SplatF64(n float64) F64x4 {
	var result F64x4
	for i := range result {
		result[i] = n
	}
	return result
}

// Pair packs two complex numbers as (re0, im0, re1, im1).
func Pair(re0, im0, re1, im1 float64) F64x4 {
	return F64x4{re0, im0, re1, im1}
}

// Add performs element-wise addition.
func (v F64x4) Add(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Sub performs element-wise subtraction.
func (v F64x4) Sub(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

// Mul performs element-wise multiplication, rounding every product.
func (v F64x4) Mul(other F64x4) F64x4 {
	var result F64x4
	for i := range v {
		result[i] = float64(v[i] * other[i])
	}
	return result
}

// SwapPairs exchanges the two lanes of each half: (a, b, c, d) -> (b, a, d, c).
// This is the 0x5 in-lane permute used to line up re*im products.
func (v F64x4) SwapPairs() F64x4 {
	return F64x4{v[1], v[0], v[3], v[2]}
}

// HAdd adds adjacent lanes of v and other, interleaved per half:
// (v0+v1, o0+o1, v2+v3, o2+o3).
func (v F64x4) HAdd(other F64x4) F64x4 {
	return F64x4{v[0] + v[1], other[0] + other[1], v[2] + v[3], other[2] + other[3]}
}

// HSub subtracts adjacent lanes of v and other, interleaved per half:
// (v0-v1, o0-o1, v2-v3, o2-o3).
func (v F64x4) HSub(other F64x4) F64x4 {
	return F64x4{v[0] - v[1], other[0] - other[1], v[2] - v[3], other[2] - other[3]}
}

// Low returns the first (re, im) pair.
func (v F64x4) Low() (re, im float64) {
	return v[0], v[1]
}

// High returns the second (re, im) pair.
func (v F64x4) High() (re, im float64) {
	return v[2], v[3]
}

// ComplexSquare squares both packed complex numbers:
// (a+bi)² = (a*a - b*b) + (a*b + b*a)i for each half.
func (v F64x4) ComplexSquare() F64x4 {
	squares := v.Mul(v)
	crossed := v.Mul(v.SwapPairs().Mul(conjugateMask))
	return squares.HSub(crossed)
}

// SquaredMagnitudes returns (|z0|², 0, |z1|², 0).
func (v F64x4) SquaredMagnitudes() F64x4 {
	return v.Mul(v).HAdd(F64x4{})
}

// conjugateMask flips the sign of the imaginary lanes.
var conjugateMask = F64x4{1, -1, 1, -1}
