// Copyright 2026 go-tensorutils Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build arm64

package lane

import "golang.org/x/sys/cpu"

func init() {
	// Check if SIMD is disabled via environment variable
	if NoSimdEnv() {
		currentLevel = DispatchScalar
		currentWidth = 16
		currentName = "scalar"
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available; it is part of the
	// ARMv8-A base architecture. The cpu package is still consulted for
	// consistency with the amd64 paths.
	if cpu.ARM64.HasASIMD {
		currentLevel = DispatchNEON
		currentWidth = 16 // NEON is 128-bit (16 bytes)
		currentName = "neon"
	} else {
		currentLevel = DispatchScalar
		currentWidth = 16
		currentName = "scalar"
	}
}
