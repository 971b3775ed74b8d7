// Package wide provides a fixed-width float64 vector used to advance two
// complex iterations in lockstep.
//
// F64x4 holds two complex numbers as (re0, im0, re1, im1), the same layout a
// 256-bit AVX register would carry. The operations are plain loops over a
// fixed-size array so the compiler is free to vectorize them; no assembly or
// unsafe is involved. Lane shuffles and horizontal add/subtract follow the
// x86 pairing rules: they work within each (re, im) half independently.
//
// Every product is wrapped in an explicit float64 conversion. That forces
// rounding after each multiply, which keeps the compiler from fusing a
// multiply and an add into one FMA instruction and lets callers reproduce the
// exact results of ordinary scalar arithmetic.
package wide
