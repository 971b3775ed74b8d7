package mandelbrot

import "golang.org/x/sys/cpu"

// HasVectorSupport reports whether the processor advertises 256-bit (x86) or
// 128-bit (arm64) float vector instructions.
func HasVectorSupport() bool {
	return cpu.X86.HasAVX || cpu.X86.HasAVX2 || cpu.ARM64.HasASIMD
}
