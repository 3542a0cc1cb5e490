//go:build !amd64 && !arm64

package lane

func init() {
	// Architectures without a modeled SIMD target fall back to scalar mode.
	currentLevel = DispatchScalar
	currentWidth = 16 // Use 16-byte vectors even in scalar mode for consistency
	currentName = "scalar"
}
