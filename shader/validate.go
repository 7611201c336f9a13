package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// CompileWGSL compiles generated WGSL source to SPIR-V uint32 words via
// gogpu/naga. The GPU backend uses it to surface malformed source as a
// generation-time error instead of a device-side compile failure.
func CompileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("shader: WGSL compilation failed: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// ValidateWGSL compiles src and discards the SPIR-V, keeping only the error.
func ValidateWGSL(src string) error {
	_, err := CompileWGSL(src)
	return err
}
